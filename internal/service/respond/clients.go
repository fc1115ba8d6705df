package respond

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/internal/service/match"
	"github.com/sandevgo/crmchat/pkg/textnorm"
)

// SearchClients finds clients named in query. A single hit gets a detailed
// card, several hits a capped list, and no hit a suggestion list or a
// not-found note.
func (r *Responder) SearchClients(query string) string {
	clients := r.data.Clients
	term := textnorm.ExtractEntityName(query)

	if utf8.RuneCountInString(term) < 2 {
		return fmt.Sprintf("יש %d לקוחות במערכת. מה תרצה לדעת עליהם?", len(clients))
	}

	found := match.Rank(clients, term)
	switch len(found) {
	case 0:
		partial := match.Partial(clients, term)
		if len(partial) == 0 {
			return fmt.Sprintf("לא מצאתי לקוח עם השם \"%s\" 😕\n\nיש %d לקוחות במערכת.", term, len(clients))
		}
		if len(partial) > listCap {
			partial = partial[:listCap]
		}
		return fmt.Sprintf("לא מצאתי התאמה מדויקת ל\"%s\", אבל אולי התכוונת ל:\n\n%s", term, strings.Join(clientBullets(partial), "\n"))
	case 1:
		return r.clientCard(found[0].Record)
	}

	recs := make([]core.Record, len(found))
	for i, c := range found {
		recs[i] = c.Record
	}
	return fmt.Sprintf("מצאתי %d לקוחות תואמים:\n\n%s", len(found), bulletList(clientBullets(recs)))
}

func (r *Responder) clientCard(client core.Record) string {
	id := client.String("id")
	ofClient := func(rec core.Record) bool { return id != "" && rec.String("client_id") == id }

	return fmt.Sprintf("מצאתי! 🎯\n\n**%s**\n- חברה: %s\n- אימייל: %s\n- טלפון: %s\n- סטטוס: %s\n- פרויקטים: %d\n- משימות: %d\n- נוצר: %s",
		client.String("name"),
		orDefault(client.String("company"), notSet),
		orDefault(client.String("email"), notSet),
		orDefault(client.String("phone"), notSet),
		orDefault(client.String("status"), notSet),
		countWhere(r.data.Projects, ofClient),
		countWhere(r.data.Tasks, ofClient),
		formatDate(client, "created_at"),
	)
}

func clientBullets(clients []core.Record) []string {
	lines := make([]string, len(clients))
	for i, c := range clients {
		lines[i] = fmt.Sprintf("• %s (%s)", c.String("name"), orDefault(c.String("company"), noCompany))
	}
	return lines
}

func (r *Responder) ClientStats() string {
	clients := r.data.Clients
	total := len(clients)
	active := countWhere(clients, statusIn("active"))
	pending := countWhere(clients, statusIn("pending"))
	inactive := countWhere(clients, statusIn("inactive"))

	return fmt.Sprintf("📊 סטטיסטיקות לקוחות:\n\n• סה\"כ: **%s** לקוחות\n• פעילים: **%d** (%d%%)\n• ממתינים: **%d** (%d%%)\n• לא פעילים: **%d** (%d%%)",
		r.count(total),
		active, percent(active, total),
		pending, percent(pending, total),
		inactive, percent(inactive, total),
	)
}

// TopClients ranks clients by the total of their paid invoices. Clients
// with equal totals keep collection order, so without invoices this is the
// first limit clients.
func (r *Responder) TopClients(limit int) string {
	if limit <= 0 {
		limit = listCap
	}
	if len(r.data.Clients) == 0 {
		return "🏆 אין לקוחות במערכת עדיין."
	}

	paid := make(map[string]float64)
	for _, inv := range r.data.Invoices {
		if inv.String("status") == "paid" {
			paid[inv.String("client_id")] += inv.Float("total_amount")
		}
	}

	ranked := make([]core.Record, len(r.data.Clients))
	copy(ranked, r.data.Clients)
	sort.SliceStable(ranked, func(i, j int) bool {
		return paid[ranked[i].String("id")] > paid[ranked[j].String("id")]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	lines := make([]string, len(ranked))
	for i, c := range ranked {
		lines[i] = fmt.Sprintf("%d. %s", i+1, c.String("name"))
		if total := paid[c.String("id")]; total > 0 {
			lines[i] += fmt.Sprintf(" (%s)", r.money(total))
		}
	}
	return fmt.Sprintf("🏆 %d לקוחות מובילים:\n\n%s", len(ranked), strings.Join(lines, "\n"))
}
