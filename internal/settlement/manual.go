package settlement

import (
	"fmt"
	"strings"

	"github.com/splitpay/splitpay/internal/models"
)

// ManualEntry is one row of the manual calculator: a person and how much they
// paid toward the shared pot.
type ManualEntry struct {
	Name   string
	Amount float64
}

// ManualScenario builds a synthetic members/expenses pair from free-form
// name/amount input, the way the manual calculator mode does: every listed
// person is a member, each payment is split equally across all of them.
// Entries with a blank name are dropped. Nothing is persisted; the result is
// meant to be fed straight into Compute or MemberBalances.
func ManualScenario(entries []ManualEntry) ([]models.Member, []models.Expense) {
	var members []models.Member
	var valid []ManualEntry
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		valid = append(valid, e)
		members = append(members, models.Member{
			ID:   fmt.Sprintf("p%d", len(members)+1),
			Name: name,
		})
	}
	if len(members) == 0 {
		return nil, nil
	}

	perHead := float64(len(members))
	var expenses []models.Expense
	for i, e := range valid {
		if e.Amount <= 0 {
			continue
		}
		shares := make([]models.Share, len(members))
		for j, m := range members {
			shares[j] = models.Share{UserID: m.ID, Amount: e.Amount / perHead}
		}
		expenses = append(expenses, models.Expense{
			Description: "Paid by " + members[i].Name,
			Amount:      e.Amount,
			PaidBy:      models.PayerRef{ID: members[i].ID, Name: members[i].Name},
			SplitMethod: models.SplitEqual,
			Shares:      shares,
		})
	}
	return members, expenses
}
