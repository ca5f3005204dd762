// Package settlement computes who owes whom to square a group's shared
// expenses with the fewest practical transfers.
//
// The computation is pure: no I/O, no state, and the output is fully
// determined by the input slice order, so the same expense history always
// yields the same plan. Malformed input (unknown payers, missing shares,
// members without IDs) degrades to fewer recognized balances instead of an
// error; a deleted user must never break the math for everyone else.
package settlement

import (
	"math"
	"sort"

	"github.com/splitpay/splitpay/internal/models"
)

// Epsilon is the single tolerance, in currency units, used everywhere:
// balances inside (-Epsilon, +Epsilon) count as settled, both when
// classifying members and when advancing the matching loop. Keeping one
// constant prevents the two checks from drifting apart.
const Epsilon = 0.01

// party is a member with a running balance during matching.
type party struct {
	id      string
	balance float64
}

// Compute derives net balances from the expense history and returns an
// ordered list of transfers that drives every member's balance to
// (approximately) zero.
//
// Matching is greedy: debtors sorted most-negative first, creditors sorted
// largest first, then a two-pointer sweep pairing the current largest debt
// with the current largest credit. Greedy is not provably minimal in transfer
// count for every balance distribution, but it is the established approach at
// friend-group scale and, with stable sorts, deterministic.
func Compute(expenses []models.Expense, members []models.Member) []models.Transfer {
	balances := NetBalances(expenses, members)

	var debtors, creditors []party
	// Iterate the members slice, not the map, so partition order follows
	// input order and the result is reproducible.
	for _, m := range members {
		bal, ok := balances[m.ID]
		if !ok {
			continue
		}
		switch {
		case bal < -Epsilon:
			debtors = append(debtors, party{id: m.ID, balance: bal})
		case bal > Epsilon:
			creditors = append(creditors, party{id: m.ID, balance: bal})
		}
	}

	sort.SliceStable(debtors, func(a, b int) bool {
		return debtors[a].balance < debtors[b].balance
	})
	sort.SliceStable(creditors, func(a, b int) bool {
		return creditors[a].balance > creditors[b].balance
	})

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		// Round once per emitted transfer, never cumulatively, so rounding
		// error does not compound across the sweep.
		amount := roundCents(math.Min(-debtors[i].balance, creditors[j].balance))

		if amount > 0 {
			transfers = append(transfers, models.Transfer{
				From:   debtors[i].id,
				To:     creditors[j].id,
				Amount: amount,
			})
		}

		debtors[i].balance += amount
		creditors[j].balance -= amount

		// Both pointers may advance in the same iteration when debt and
		// credit zero out together.
		if math.Abs(debtors[i].balance) < Epsilon {
			i++
		}
		if creditors[j].balance < Epsilon {
			j++
		}
	}

	return transfers
}

// NetBalances computes each member's net position: amounts paid as payer
// minus amounts owed across all shares. Positive = creditor, negative =
// debtor. Payers or share members not present in members are silently
// skipped, so a ledger referencing a deleted user still computes for the
// rest; the sum of balances may then be non-zero, which is documented
// behavior rather than a bug.
func NetBalances(expenses []models.Expense, members []models.Member) map[string]float64 {
	balances := make(map[string]float64, len(members))
	for _, m := range members {
		if m.ID == "" {
			continue
		}
		balances[m.ID] = 0
	}

	for _, exp := range expenses {
		if _, ok := balances[exp.PaidBy.ID]; ok {
			balances[exp.PaidBy.ID] += exp.Amount
		}
		for _, share := range exp.Shares {
			if _, ok := balances[share.UserID]; ok {
				balances[share.UserID] -= share.Amount
			}
		}
	}

	return balances
}

// roundCents rounds to two decimal places, half away from zero, matching
// currency display conventions.
func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
