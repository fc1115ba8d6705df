package intent

import (
	"strings"

	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/pkg/textnorm"
)

const topClientsLimit = 10

// ClientLookup reports whether a name refers to a known client.
type ClientLookup interface {
	HasClient(name string) bool
}

type rule struct {
	kind   core.IntentKind
	match  func(q string, c *Classifier) bool
	params func(q string) core.IntentParams
}

// Classifier maps a query to exactly one intent. Rules are tried top to
// bottom and the first match wins.
type Classifier struct {
	lookup ClientLookup
	rules  []rule
}

func New(lookup ClientLookup) *Classifier {
	return &Classifier{lookup: lookup, rules: rules}
}

var rules = []rule{
	// Count questions mention "client" too, so they must win over search.
	{
		kind: core.IntentClientStats,
		match: func(q string, _ *Classifier) bool {
			return containsAny(q, "כמה לקוחות", `סה"כ לקוחות`, "מספר לקוחות", "לקוחות יש", "כמה יש לקוחות", "how many clients") ||
				(strings.Contains(q, "כמה") && strings.Contains(q, "לקוח"))
		},
	},
	// "לקוחות הכי טובים" also satisfies the broad client-search rule below.
	{
		kind: core.IntentTopClients,
		match: func(q string, _ *Classifier) bool {
			return containsAny(q, "לקוחות הכי", "לקוחות טוב", "לקוחות מוביל", "top clients", "best clients")
		},
		params: func(string) core.IntentParams { return core.IntentParams{Limit: topClientsLimit} },
	},
	{
		kind: core.IntentClientSearch,
		match: func(q string, _ *Classifier) bool {
			if !containsAny(q, "לקוח", "client", "customer") {
				return false
			}
			if containsAny(q, "מצא", "חפש", "בשם", "find", "search") {
				return true
			}
			return !containsAny(q, "כמה", `סה"כ`, "רשימ")
		},
		params: queryParams,
	},
	// A bare name ("יוסי כהן") is a client search when the name is known.
	{
		kind: core.IntentClientSearch,
		match: func(q string, c *Classifier) bool {
			if c.lookup == nil {
				return false
			}
			name := textnorm.ExtractEntityName(q)
			return len([]rune(name)) >= 2 && c.lookup.HasClient(name)
		},
		params: queryParams,
	},
	{
		kind: core.IntentProjectStats,
		match: func(q string, _ *Classifier) bool {
			return containsAny(q, "כמה פרויקט", "כמה פרוייקט", "פרויקטים יש", "פרוייקטים יש", "how many projects")
		},
	},
	{
		kind: core.IntentProjectSearch,
		match: func(q string, _ *Classifier) bool {
			return containsAny(q, "פרויקט", "פרוייקט", "project")
		},
		params: queryParams,
	},
	{
		kind: core.IntentTimeSummary,
		match: func(q string, _ *Classifier) bool {
			return containsAny(q, "שעות", "hours") ||
				(strings.Contains(q, "זמן") && containsAny(q, "היום", "השבוע", "החודש"))
		},
		params: periodParams,
	},
	{
		kind: core.IntentRevenueReport,
		match: func(q string, _ *Classifier) bool {
			return containsAny(q, "הכנסות", "רווח", "כסף", "revenue", "income")
		},
		params: periodParams,
	},
	{
		kind: core.IntentTaskStats,
		match: func(q string, _ *Classifier) bool {
			return containsAny(q, "כמה משימ", "משימות יש", "how many tasks")
		},
	},
	// Overdue is a narrower task question than the plain task list.
	{
		kind: core.IntentOverdueTasks,
		match: func(q string, _ *Classifier) bool {
			return (strings.Contains(q, "משימ") && strings.Contains(q, "באיחור")) ||
				(strings.Contains(q, "task") && strings.Contains(q, "overdue"))
		},
	},
	{
		kind: core.IntentTaskList,
		match: func(q string, _ *Classifier) bool {
			return containsAny(q, "משימ", "task")
		},
		params: func(q string) core.IntentParams { return core.IntentParams{Status: TaskStatus(q)} },
	},
	{
		kind: core.IntentUpcomingMeetings,
		match: func(q string, _ *Classifier) bool {
			return containsAny(q, "פגיש", "meeting")
		},
		params: func(q string) core.IntentParams { return core.IntentParams{Days: Days(q)} },
	},
	{
		kind: core.IntentQuoteStatus,
		match: func(q string, _ *Classifier) bool {
			return containsAny(q, "הצע", "quote")
		},
	},
	{
		kind: core.IntentInvoiceSummary,
		match: func(q string, _ *Classifier) bool {
			return containsAny(q, "חשבונ", "invoice")
		},
	},
}

// Classify lowercases the query and returns the first matching intent, or
// general with the query attached.
func (c *Classifier) Classify(query string) core.Intent {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, r := range c.rules {
		if !r.match(q, c) {
			continue
		}
		in := core.Intent{Kind: r.kind}
		if r.params != nil {
			in.Params = r.params(q)
		}
		return in
	}
	return core.Intent{Kind: core.IntentGeneral, Params: core.IntentParams{Query: q}}
}

func queryParams(q string) core.IntentParams {
	return core.IntentParams{Query: q}
}

func periodParams(q string) core.IntentParams {
	return core.IntentParams{Period: Period(q)}
}

// containsAny ignores Hebrew final letters, so a keyword written in its
// singular form ("הושלם") also matches inflections ("שהושלמו").
func containsAny(s string, subs ...string) bool {
	s = textnorm.FoldFinals(s)
	for _, sub := range subs {
		if strings.Contains(s, textnorm.FoldFinals(sub)) {
			return true
		}
	}
	return false
}
