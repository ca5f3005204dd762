package settlement

import (
	"math"
	"reflect"
	"testing"

	"github.com/splitpay/splitpay/internal/models"
)

func member(id, name string) models.Member {
	return models.Member{ID: id, Name: name}
}

// expense builds an expense paid by payerID with the given (member, amount)
// share pairs.
func expense(payerID string, amount float64, shares ...models.Share) models.Expense {
	return models.Expense{
		Description: "test",
		Amount:      amount,
		PaidBy:      models.PayerRef{ID: payerID},
		Shares:      shares,
	}
}

func share(userID string, amount float64) models.Share {
	return models.Share{UserID: userID, Amount: amount}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		members  []models.Member
		expenses []models.Expense
		want     []models.Transfer
	}{
		{
			name:    "single payer equal split",
			members: []models.Member{member("a", "A"), member("b", "B"), member("c", "C")},
			expenses: []models.Expense{
				expense("a", 300, share("a", 100), share("b", 100), share("c", 100)),
			},
			want: []models.Transfer{
				{From: "b", To: "a", Amount: 100},
				{From: "c", To: "a", Amount: 100},
			},
		},
		{
			name:    "settlement zeroes the pair",
			members: []models.Member{member("a", "A"), member("b", "B")},
			expenses: []models.Expense{
				// A pays 50 entirely for B, then B settles up.
				expense("a", 50, share("b", 50)),
				expense("b", 50, share("a", 50)),
			},
			want: nil,
		},
		{
			name:     "no expenses",
			members:  []models.Member{member("a", "A"), member("b", "B"), member("c", "C")},
			expenses: nil,
			want:     nil,
		},
		{
			name:    "unknown payer is dropped, shares still subtracted",
			members: []models.Member{member("a", "A"), member("b", "B")},
			expenses: []models.Expense{
				expense("ghost", 100, share("a", 50), share("b", 50)),
				expense("a", 100, share("a", 50), share("b", 50)),
			},
			// Balances: a = 100 - 100 = 0, b = -100. Nobody is owed, so b's
			// debt has no matching creditor; the ledger is temporarily
			// unbalanced and the plan is empty.
			want: nil,
		},
		{
			name:    "members without IDs are skipped",
			members: []models.Member{member("", "broken"), member("a", "A"), member("b", "B")},
			expenses: []models.Expense{
				expense("a", 40, share("a", 20), share("b", 20)),
			},
			want: []models.Transfer{{From: "b", To: "a", Amount: 20}},
		},
		{
			name:    "missing shares treated as empty",
			members: []models.Member{member("a", "A"), member("b", "B")},
			expenses: []models.Expense{
				{Amount: 80, PaidBy: models.PayerRef{ID: "a"}},
			},
			// Payer is credited, nobody owes: a single creditor with no
			// debtors yields no transfers.
			want: nil,
		},
		{
			name:    "largest debt pairs with largest credit",
			members: []models.Member{member("a", "A"), member("b", "B"), member("c", "C"), member("d", "D")},
			expenses: []models.Expense{
				expense("a", 120, share("a", 30), share("b", 30), share("c", 30), share("d", 30)),
				expense("b", 40, share("a", 10), share("b", 10), share("c", 10), share("d", 10)),
			},
			// Balances: a = +80, b = 0, c = -40, d = -40.
			want: []models.Transfer{
				{From: "c", To: "a", Amount: 40},
				{From: "d", To: "a", Amount: 40},
			},
		},
		{
			name:    "near-zero balances inside the tolerance band are settled",
			members: []models.Member{member("a", "A"), member("b", "B")},
			expenses: []models.Expense{
				expense("a", 10, share("a", 5.004), share("b", 4.996)),
			},
			// a = +4.996, b = -4.996: a real debt, rounded to 5.00 on
			// emission; the 0.004 residue on each side falls inside the
			// tolerance band and is absorbed.
			want: []models.Transfer{{From: "b", To: "a", Amount: 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.expenses, tt.members)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeEmptyInputs(t *testing.T) {
	if got := Compute(nil, nil); len(got) != 0 {
		t.Errorf("Compute(nil, nil) = %+v, want empty", got)
	}
	exps := []models.Expense{expense("a", 10, share("b", 10))}
	if got := Compute(exps, nil); len(got) != 0 {
		t.Errorf("Compute with no members = %+v, want empty", got)
	}
}

func TestComputeDeterminism(t *testing.T) {
	members := []models.Member{member("a", "A"), member("b", "B"), member("c", "C"), member("d", "D")}
	expenses := []models.Expense{
		expense("a", 99.99, share("a", 33.33), share("b", 33.33), share("c", 33.33)),
		expense("b", 45.50, share("b", 15.17), share("c", 15.17), share("d", 15.16)),
		expense("d", 12.00, share("a", 6.00), share("d", 6.00)),
	}

	first := Compute(expenses, members)
	for run := 0; run < 10; run++ {
		if got := Compute(expenses, members); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Compute() = %+v, want %+v", run, got, first)
		}
	}
}

// TestComputeZeroesBalances checks that applying the plan to the
// pre-settlement balances leaves every member within Epsilon of zero.
func TestComputeZeroesBalances(t *testing.T) {
	members := []models.Member{member("a", "A"), member("b", "B"), member("c", "C"), member("d", "D"), member("e", "E")}
	expenses := []models.Expense{
		expense("a", 250, share("a", 50), share("b", 50), share("c", 50), share("d", 50), share("e", 50)),
		expense("b", 80.40, share("a", 26.80), share("b", 26.80), share("c", 26.80)),
		expense("c", 33.33, share("d", 16.67), share("e", 16.66)),
	}

	balances := NetBalances(expenses, members)

	var total float64
	for _, bal := range balances {
		total += bal
	}
	if math.Abs(total) > Epsilon {
		t.Fatalf("pre-settlement balances sum to %v, want 0 within %v", total, Epsilon)
	}

	for _, tr := range Compute(expenses, members) {
		if tr.From == tr.To {
			t.Errorf("self-transfer: %+v", tr)
		}
		if tr.Amount <= 0 {
			t.Errorf("non-positive transfer: %+v", tr)
		}
		balances[tr.From] += tr.Amount
		balances[tr.To] -= tr.Amount
	}

	for id, bal := range balances {
		if math.Abs(bal) > Epsilon {
			t.Errorf("member %s left with balance %v after applying plan", id, bal)
		}
	}
}

// TestComputeIdempotentAfterSettlement feeds the plan back in as recorded
// settlement expenses and checks the recomputed plan is empty.
func TestComputeIdempotentAfterSettlement(t *testing.T) {
	members := []models.Member{member("a", "A"), member("b", "B"), member("c", "C")}
	expenses := []models.Expense{
		expense("a", 300, share("a", 100), share("b", 100), share("c", 100)),
		expense("b", 60, share("a", 20), share("b", 20), share("c", 20)),
	}

	plan := Compute(expenses, members)
	if len(plan) == 0 {
		t.Fatal("expected a non-empty plan to settle")
	}

	settled := expenses
	for _, tr := range plan {
		settled = append(settled, models.Expense{
			Description: models.SettlementDescription,
			Amount:      tr.Amount,
			PaidBy:      models.PayerRef{ID: tr.From},
			SplitMethod: models.SplitCustom,
			Shares:      []models.Share{{UserID: tr.To, Amount: tr.Amount}},
			Settlement:  true,
		})
	}

	if rerun := Compute(settled, members); len(rerun) != 0 {
		t.Errorf("plan after settling = %+v, want empty", rerun)
	}
}

func TestNetBalances(t *testing.T) {
	members := []models.Member{member("a", "A"), member("b", "B"), member("c", "C")}
	expenses := []models.Expense{
		expense("a", 300, share("a", 100), share("b", 100), share("c", 100)),
	}

	balances := NetBalances(expenses, members)
	want := map[string]float64{"a": 200, "b": -100, "c": -100}
	for id, w := range want {
		if math.Abs(balances[id]-w) > Epsilon {
			t.Errorf("balance[%s] = %v, want %v", id, balances[id], w)
		}
	}
}

func TestMemberBalances(t *testing.T) {
	members := []models.Member{member("a", "A"), member("b", "B")}
	expenses := []models.Expense{
		expense("a", 100, share("a", 60), share("b", 40)),
		expense("b", 20, share("a", 10), share("b", 10)),
	}

	got := MemberBalances(expenses, members)
	if len(got) != 2 {
		t.Fatalf("got %d balances, want 2", len(got))
	}
	a, b := got[0], got[1]
	if a.ID != "a" || b.ID != "b" {
		t.Fatalf("balances out of member order: %+v", got)
	}
	if math.Abs(a.Paid-100) > Epsilon || math.Abs(a.Owed-70) > Epsilon || math.Abs(a.Net-30) > Epsilon {
		t.Errorf("A = %+v, want paid 100, owed 70, net 30", a)
	}
	if math.Abs(b.Paid-20) > Epsilon || math.Abs(b.Owed-50) > Epsilon || math.Abs(b.Net+30) > Epsilon {
		t.Errorf("B = %+v, want paid 20, owed 50, net -30", b)
	}
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{10.004, 10.0},
		{10.005, 10.01},
		{33.333333, 33.33},
		{0.001, 0},
	}
	for _, tt := range tests {
		if got := roundCents(tt.in); got != tt.want {
			t.Errorf("roundCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
