package respond

import (
	"fmt"
	"strings"

	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/pkg/textnorm"
)

var projectWords = map[string]struct{}{
	"פרויקט": {}, "פרוייקט": {}, "הפרויקט": {}, "project": {}, "projects": {},
}

func (r *Responder) ProjectStats() string {
	projects := r.data.Projects
	if len(projects) == 0 {
		return "🏗️ אין פרויקטים במערכת עדיין."
	}

	return fmt.Sprintf("🏗️ סטטיסטיקות פרויקטים:\n\n• סה\"כ: **%s** פרויקטים\n• פעילים: **%d**\n• הושלמו: **%d**\n• בהמתנה: **%d**",
		r.count(len(projects)),
		countWhere(projects, statusIn("active")),
		countWhere(projects, statusIn("completed")),
		countWhere(projects, statusIn("on_hold", "paused")),
	)
}

// SearchProjects lists projects whose name or description mentions the
// term left in query. Without a term, or without hits, it summarises the
// collection.
func (r *Responder) SearchProjects(query string) string {
	projects := r.data.Projects

	if term := projectTerm(query); term != "" {
		hits := filter(projects, func(p core.Record) bool {
			return strings.Contains(textnorm.Normalize(p.String("name")), term) ||
				strings.Contains(textnorm.Normalize(p.String("description")), term)
		})
		if len(hits) > 0 {
			lines := make([]string, len(hits))
			for i, p := range hits {
				lines[i] = fmt.Sprintf("• %s (%s)", p.String("name"), orDefault(p.String("status"), notSet))
			}
			return fmt.Sprintf("🏗️ מצאתי %d פרויקטים:\n\n%s", len(hits), bulletList(lines))
		}
	}

	active := countWhere(projects, statusIn("active"))
	return fmt.Sprintf("🏗️ יש %d פרויקטים במערכת:\n• %d פעילים\n• %d לא פעילים", len(projects), active, len(projects)-active)
}

func projectTerm(query string) string {
	fields := strings.Fields(textnorm.ExtractEntityName(query))
	kept := fields[:0]
	for _, f := range fields {
		if _, skip := projectWords[f]; !skip {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
