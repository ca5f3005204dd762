package settlement

import (
	"math"
	"testing"
)

func TestManualScenario(t *testing.T) {
	members, expenses := ManualScenario([]ManualEntry{
		{Name: "Alice", Amount: 120},
		{Name: "  ", Amount: 999}, // blank names dropped
		{Name: "Bob", Amount: 30},
		{Name: "Carol", Amount: 0}, // paid nothing, still a member
	})

	if len(members) != 3 {
		t.Fatalf("got %d members, want 3", len(members))
	}
	if len(expenses) != 2 {
		t.Fatalf("got %d expenses, want 2 (zero payments skipped)", len(expenses))
	}

	for _, exp := range expenses {
		if len(exp.Shares) != len(members) {
			t.Errorf("expense %q has %d shares, want %d", exp.Description, len(exp.Shares), len(members))
		}
		var sum float64
		for _, s := range exp.Shares {
			sum += s.Amount
		}
		if math.Abs(sum-exp.Amount) > Epsilon {
			t.Errorf("shares of %q sum to %v, want %v", exp.Description, sum, exp.Amount)
		}
	}

	// Total pot 150 across 3 people = 50 a head. Alice fronted 120, Bob 30.
	plan := Compute(expenses, members)
	balances := NetBalances(expenses, members)
	if math.Abs(balances[members[0].ID]-70) > Epsilon {
		t.Errorf("Alice net = %v, want +70", balances[members[0].ID])
	}
	if len(plan) != 2 {
		t.Fatalf("plan = %+v, want two transfers to Alice", plan)
	}
	for _, tr := range plan {
		if tr.To != members[0].ID {
			t.Errorf("transfer %+v should pay Alice", tr)
		}
	}
}

func TestManualScenarioEmpty(t *testing.T) {
	members, expenses := ManualScenario(nil)
	if members != nil || expenses != nil {
		t.Errorf("ManualScenario(nil) = %v, %v, want nil, nil", members, expenses)
	}
}
