package models

// Transfer is a suggested payment from one member to another that moves both
// balances toward zero. Produced by the settlement engine; never persisted
// directly (confirming a transfer records it as a Settlement expense).
type Transfer struct {
	// From is the debtor: the member who should pay.
	From string `json:"from"`

	// To is the creditor: the member who should receive the payment.
	To string `json:"to"`

	// Amount is the payment amount, rounded to two decimals, strictly
	// positive.
	Amount float64 `json:"amount"`
}
