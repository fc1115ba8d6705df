package respond

import (
	"fmt"
	"strings"

	"github.com/sandevgo/crmchat/internal/core"
)

const defaultMeetingDays = 7

func (r *Responder) UpcomingMeetings(days int) string {
	if days <= 0 {
		days = defaultMeetingDays
	}
	now := r.clock.Now()
	until := now.AddDate(0, 0, days)

	upcoming := filter(r.data.Meetings, func(m core.Record) bool {
		at, ok := m.Time("scheduled_at")
		return ok && !at.Before(now) && !at.After(until)
	})

	if len(upcoming) == 0 {
		return fmt.Sprintf("📅 אין פגישות ב-%d הימים הקרובים", days)
	}

	shown := upcoming
	if len(shown) > listCap {
		shown = shown[:listCap]
	}
	lines := make([]string, len(shown))
	for i, m := range shown {
		lines[i] = fmt.Sprintf("• %s - %s", m.String("title"), formatDate(m, "scheduled_at"))
	}
	return fmt.Sprintf("📅 יש **%d** פגישות ב-%d הימים הקרובים:\n\n%s", len(upcoming), days, strings.Join(lines, "\n"))
}
