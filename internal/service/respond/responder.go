// Package respond renders answers for classified intents from a dataset
// snapshot. Responders only read the dataset; they never fail.
package respond

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sandevgo/crmchat/internal/core"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	listCap    = 5
	notSet     = "לא צוין"
	noCompany  = "ללא חברה"
	dateLayout = "2.1.2006"
)

type Responder struct {
	data    *core.Dataset
	clock   core.Clock
	printer *message.Printer
}

func New(data *core.Dataset, clock core.Clock) *Responder {
	if data == nil {
		data = &core.Dataset{}
	}
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &Responder{
		data:    data,
		clock:   clock,
		printer: message.NewPrinter(language.Hebrew),
	}
}

// Respond dispatches an intent to its responder.
func (r *Responder) Respond(in core.Intent) string {
	switch in.Kind {
	case core.IntentClientSearch:
		return r.SearchClients(in.Params.Query)
	case core.IntentClientStats:
		return r.ClientStats()
	case core.IntentProjectSearch:
		return r.SearchProjects(in.Params.Query)
	case core.IntentProjectStats:
		return r.ProjectStats()
	case core.IntentTimeSummary:
		return r.TimeSummary(in.Params.Period)
	case core.IntentRevenueReport:
		return r.RevenueReport(in.Params.Period)
	case core.IntentTaskList:
		return r.Tasks(in.Params.Status)
	case core.IntentTaskStats:
		return r.TaskStats()
	case core.IntentOverdueTasks:
		return r.OverdueTasks()
	case core.IntentUpcomingMeetings:
		return r.UpcomingMeetings(in.Params.Days)
	case core.IntentQuoteStatus:
		return r.QuoteStatus()
	case core.IntentInvoiceSummary:
		return r.InvoiceSummary()
	case core.IntentTopClients:
		return r.TopClients(in.Params.Limit)
	default:
		return r.General(in.Params.Query)
	}
}

func (r *Responder) money(v float64) string {
	return "₪" + r.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

func (r *Responder) count(n int) string {
	return r.printer.Sprintf("%v", number.Decimal(n))
}

// percent rounds part/total to the nearest integer; an empty total is 0%.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func formatDate(rec core.Record, key string) string {
	t, ok := rec.Time(key)
	if !ok {
		return notSet
	}
	return t.Format(dateLayout)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// bulletList joins the first five lines and notes how many were left out.
func bulletList(lines []string) string {
	shown := lines
	if len(shown) > listCap {
		shown = shown[:listCap]
	}
	out := strings.Join(shown, "\n")
	if rest := len(lines) - listCap; rest > 0 {
		out += fmt.Sprintf("\n\n...ועוד %d", rest)
	}
	return out
}

func filter(rows []core.Record, keep func(core.Record) bool) []core.Record {
	var res []core.Record
	for _, row := range rows {
		if keep(row) {
			res = append(res, row)
		}
	}
	return res
}

func countWhere(rows []core.Record, keep func(core.Record) bool) int {
	n := 0
	for _, row := range rows {
		if keep(row) {
			n++
		}
	}
	return n
}

func statusIn(statuses ...string) func(core.Record) bool {
	return func(rec core.Record) bool {
		s := rec.String("status")
		for _, want := range statuses {
			if s == want {
				return true
			}
		}
		return false
	}
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
