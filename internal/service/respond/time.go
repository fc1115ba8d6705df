package respond

import (
	"fmt"
	"time"

	"github.com/sandevgo/crmchat/internal/core"
)

const day = 24 * time.Hour

var periodLabels = map[core.Period]string{
	core.PeriodToday: "היום",
	core.PeriodWeek:  "השבוע",
	core.PeriodMonth: "החודש",
}

// inPeriod reports whether t falls in the period ending now: the same
// calendar date for today, otherwise a trailing 7 or 30 day window.
func inPeriod(t, now time.Time, p core.Period) bool {
	switch p {
	case core.PeriodWeek:
		return !t.Before(now.Add(-7 * day))
	case core.PeriodMonth:
		return !t.Before(now.Add(-30 * day))
	default:
		return sameDay(t, now)
	}
}

func (r *Responder) TimeSummary(period core.Period) string {
	if _, ok := periodLabels[period]; !ok {
		period = core.PeriodToday
	}
	now := r.clock.Now()

	entries := filter(r.data.TimeEntries, func(e core.Record) bool {
		start, ok := e.Time("start_time")
		return ok && inPeriod(start, now, period)
	})

	var minutes float64
	for _, e := range entries {
		minutes += e.Float("duration_minutes")
	}

	return fmt.Sprintf("⏱️ סיכום זמנים %s:\n\n• סה\"כ שעות: **%.1f**\n• רישומים: **%d**",
		periodLabels[period], minutes/60, len(entries))
}
