package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Split methods accepted on an expense.
const (
	SplitEqual  = "equal"
	SplitCustom = "custom"
)

// SettlementDescription is the default description for recorded settlements.
// Display-only: the Settlement flag, not this string, marks an expense as a
// settlement.
const SettlementDescription = "Settlement Payment"

// Expense represents a recorded payment event with a payer and a distribution
// of shares among members.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"group,omitempty"`

	// Description is the human-readable label for the expense.
	Description string `json:"description"`

	// Amount is the total amount paid (positive).
	Amount float64 `json:"amount"`

	// PaidBy references the member who paid. Accepts either a bare ID or an
	// embedded object on decode; see PayerRef.
	PaidBy PayerRef `json:"paidBy"`

	// SplitMethod is either "equal" or "custom".
	SplitMethod string `json:"splitMethod,omitempty"`

	// Shares lists who owes what for this expense. The shares should sum to
	// Amount; this is checked with a tolerance at the service boundary, not
	// re-validated by the settlement engine.
	Shares []Share `json:"shares"`

	// Settlement marks this expense as a recorded settlement payment
	// (payer = debtor, single share to the creditor).
	Settlement bool `json:"settlement,omitempty"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`
}

// Share is one member's owed portion of an expense.
type Share struct {
	UserID string  `json:"user"`
	Amount float64 `json:"amount"`
}

// PayerRef is a reference to the paying member. Historically clients have sent
// either a bare ID string or a denormalized object carrying the ID, so the
// decoder accepts both:
//
//	"paidBy": "42"
//	"paidBy": {"id": "42", "name": "Alice"}
//	"paidBy": {"_id": "42", "name": "Alice"}
//
// The extraction happens here at the JSON boundary; the settlement engine only
// ever sees the plain ID.
type PayerRef struct {
	ID   string
	Name string
}

type payerObject struct {
	ID       string `json:"id"`
	LegacyID string `json:"_id,omitempty"`
	Name     string `json:"name"`
}

// UnmarshalJSON decodes either representation. An unrecognized shape leaves
// the reference empty rather than failing: a dangling payer degrades to a
// skipped balance contribution downstream.
func (p *PayerRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = PayerRef{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode payer id: %w", err)
		}
		*p = PayerRef{ID: id}
		return nil
	}
	var obj payerObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode payer object: %w", err)
	}
	id := obj.ID
	if id == "" {
		id = obj.LegacyID
	}
	*p = PayerRef{ID: id, Name: obj.Name}
	return nil
}

// MarshalJSON always emits the object form.
func (p PayerRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(payerObject{ID: p.ID, Name: p.Name})
}
