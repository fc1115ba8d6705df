package respond

import (
	"fmt"

	"github.com/sandevgo/crmchat/internal/core"
)

// RevenueReport sums paid and pending invoices. The period is accepted but
// does not filter invoices: every invoice in the snapshot is counted.
func (r *Responder) RevenueReport(_ core.Period) string {
	paid := filter(r.data.Invoices, statusIn("paid"))
	pending := filter(r.data.Invoices, statusIn("pending"))

	totalPaid := sumAmount(paid)
	totalPending := sumAmount(pending)

	return fmt.Sprintf("💰 דוח הכנסות:\n\n• שולם: **%s** (%d חשבוניות)\n• ממתין: **%s** (%d חשבוניות)\n• סה\"כ: **%s**",
		r.money(totalPaid), len(paid),
		r.money(totalPending), len(pending),
		r.money(totalPaid+totalPending),
	)
}

func (r *Responder) QuoteStatus() string {
	quotes := r.data.Quotes
	return fmt.Sprintf("📝 הצעות מחיר:\n\n• סה\"כ: **%d**\n• ממתינות: **%d**\n• אושרו: **%d**\n• נדחו: **%d**",
		len(quotes),
		countWhere(quotes, statusIn("pending")),
		countWhere(quotes, statusIn("accepted")),
		countWhere(quotes, statusIn("rejected")),
	)
}

func (r *Responder) InvoiceSummary() string {
	invoices := r.data.Invoices
	now := r.clock.Now()

	overdue := countWhere(invoices, func(inv core.Record) bool {
		due, ok := inv.Time("due_date")
		return inv.String("status") == "pending" && ok && due.Before(now)
	})

	return fmt.Sprintf("🧾 חשבוניות:\n\n• סה\"כ: **%d**\n• שולם: **%d** ✅\n• ממתין: **%d**\n• באיחור: **%d** ⚠️",
		len(invoices),
		countWhere(invoices, statusIn("paid")),
		countWhere(invoices, statusIn("pending")),
		overdue,
	)
}

func sumAmount(rows []core.Record) float64 {
	var sum float64
	for _, row := range rows {
		sum += row.Float("total_amount")
	}
	return sum
}
