package core

type IntentKind string

const (
	IntentClientSearch     IntentKind = "client-search"
	IntentClientStats      IntentKind = "client-stats"
	IntentProjectSearch    IntentKind = "project-search"
	IntentProjectStats     IntentKind = "project-stats"
	IntentTimeSummary      IntentKind = "time-summary"
	IntentRevenueReport    IntentKind = "revenue-report"
	IntentTaskList         IntentKind = "task-list"
	IntentTaskStats        IntentKind = "task-stats"
	IntentOverdueTasks     IntentKind = "overdue-tasks"
	IntentUpcomingMeetings IntentKind = "upcoming-meetings"
	IntentQuoteStatus      IntentKind = "quote-status"
	IntentInvoiceSummary   IntentKind = "invoice-summary"
	IntentTopClients       IntentKind = "top-clients"
	IntentGeneral          IntentKind = "general"
)

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

type TaskStatus string

const (
	TaskStatusAll       TaskStatus = "all"
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// IntentParams carries the parameters extracted for an intent. Only the
// fields relevant to the intent kind are set.
type IntentParams struct {
	Query  string
	Period Period
	Status TaskStatus
	Days   int
	Limit  int
}

type Intent struct {
	Kind   IntentKind
	Params IntentParams
}
