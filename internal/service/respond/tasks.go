package respond

import (
	"fmt"

	"github.com/sandevgo/crmchat/internal/core"
)

func (r *Responder) Tasks(status core.TaskStatus) string {
	tasks := r.data.Tasks

	switch status {
	case core.TaskStatusPending:
		open := countWhere(tasks, func(t core.Record) bool { return !isDone(t) })
		return fmt.Sprintf("📋 יש **%d** משימות פתוחות", open)
	case core.TaskStatusCompleted:
		return fmt.Sprintf("📋 יש **%d** משימות שהושלמו", countWhere(tasks, statusIn("completed", "done")))
	}
	return fmt.Sprintf("📋 יש **%d** משימות במערכת", len(tasks))
}

func (r *Responder) TaskStats() string {
	tasks := r.data.Tasks
	if len(tasks) == 0 {
		return "📋 אין משימות במערכת עדיין."
	}
	now := r.clock.Now()

	overdue := countWhere(tasks, func(t core.Record) bool {
		due, ok := t.Time("due_date")
		return ok && due.Before(now) && !isDone(t)
	})

	return fmt.Sprintf("📋 סטטיסטיקות משימות:\n\n• סה\"כ: **%s** משימות\n• בהמתנה: **%d**\n• בביצוע: **%d**\n• הושלמו: **%d**\n• באיחור: **%d** ⚠️",
		r.count(len(tasks)),
		countWhere(tasks, statusIn("pending", "todo")),
		countWhere(tasks, statusIn("in_progress", "doing")),
		countWhere(tasks, statusIn("completed", "done")),
		overdue,
	)
}

// OverdueTasks lists open tasks whose due date has passed. Tasks with a
// missing or malformed due date are never overdue.
func (r *Responder) OverdueTasks() string {
	now := r.clock.Now()
	overdue := filter(r.data.Tasks, func(t core.Record) bool {
		due, ok := t.Time("due_date")
		return !isDone(t) && ok && due.Before(now)
	})

	if len(overdue) == 0 {
		return "✅ מעולה! אין משימות באיחור"
	}

	lines := make([]string, len(overdue))
	for i, t := range overdue {
		lines[i] = fmt.Sprintf("• %s (%s)", t.String("title"), formatDate(t, "due_date"))
	}
	return fmt.Sprintf("⚠️ יש **%d** משימות באיחור:\n\n%s", len(overdue), bulletList(lines))
}

var isDone = statusIn("completed", "done")
