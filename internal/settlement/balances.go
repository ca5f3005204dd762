package settlement

import "github.com/splitpay/splitpay/internal/models"

// MemberBalance is the per-member summary used by the balance views and the
// PDF report.
type MemberBalance struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Paid float64 `json:"paid"` // total paid as payer
	Owed float64 `json:"owed"` // total owed across all shares
	Net  float64 `json:"net"`  // Paid - Owed; positive = is owed money
}

// MemberBalances returns one summary per valid member, in members order.
// Same recognition rules as NetBalances: unknown references are skipped.
func MemberBalances(expenses []models.Expense, members []models.Member) []MemberBalance {
	index := make(map[string]int, len(members))
	var out []MemberBalance
	for _, m := range members {
		if m.ID == "" {
			continue
		}
		index[m.ID] = len(out)
		out = append(out, MemberBalance{ID: m.ID, Name: m.Name})
	}

	for _, exp := range expenses {
		if i, ok := index[exp.PaidBy.ID]; ok {
			out[i].Paid += exp.Amount
		}
		for _, share := range exp.Shares {
			if i, ok := index[share.UserID]; ok {
				out[i].Owed += share.Amount
			}
		}
	}

	for i := range out {
		out[i].Net = out[i].Paid - out[i].Owed
	}
	return out
}
