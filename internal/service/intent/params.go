package intent

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandevgo/crmchat/internal/core"
)

const (
	defaultDays = 7
	// maxDays bounds the meeting window to about ten years.
	maxDays = 3650
)

var numberRe = regexp.MustCompile(`\d+`)

// Period defaults to today when the query names no period.
func Period(q string) core.Period {
	switch {
	case containsAny(q, "היום", "today"):
		return core.PeriodToday
	case containsAny(q, "השבוע", "this week", "week"):
		return core.PeriodWeek
	case containsAny(q, "החודש", "this month", "month"):
		return core.PeriodMonth
	}
	return core.PeriodToday
}

func TaskStatus(q string) core.TaskStatus {
	switch {
	case containsAny(q, "פתוח", "ממתין", "open", "pending"):
		return core.TaskStatusPending
	case containsAny(q, "סגור", "הושלם", "closed", "done", "completed"):
		return core.TaskStatusCompleted
	}
	return core.TaskStatusAll
}

// Days returns the first number in the query capped at maxDays, or 7.
func Days(q string) int {
	m := numberRe.FindString(strings.TrimSpace(q))
	if m == "" {
		return defaultDays
	}
	n, err := strconv.Atoi(m)
	if errors.Is(err, strconv.ErrRange) {
		return maxDays
	}
	if err != nil || n <= 0 {
		return defaultDays
	}
	return min(n, maxDays)
}
