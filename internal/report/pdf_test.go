package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/splitpay/splitpay/internal/models"
	"github.com/splitpay/splitpay/internal/settlement"
)

func TestWritePDF(t *testing.T) {
	summary := Summary{
		Title:       "Goa Trip",
		Currency:    "INR",
		GeneratedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		TotalSpent:  300,
		Balances: []settlement.MemberBalance{
			{ID: "u1", Name: "Alice", Paid: 300, Owed: 100, Net: 200},
			{ID: "u2", Name: "Bob", Paid: 0, Owed: 100, Net: -100},
			{ID: "u3", Name: "Carol", Paid: 0, Owed: 100, Net: -100},
		},
		Transfers: []models.Transfer{
			{From: "u2", To: "u1", Amount: 100},
			{From: "u3", To: "u1", Amount: 100},
		},
		Names: map[string]string{"u1": "Alice", "u2": "Bob", "u3": "Carol"},
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, summary); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", buf.Bytes()[:min(20, buf.Len())])
	}
}

func TestWritePDFSettledUp(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, Summary{Title: "Empty Group"})
	if err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty output for a settled-up group")
	}
}
