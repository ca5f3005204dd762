// Package report renders settlement summaries as PDF documents.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/splitpay/splitpay/internal/models"
	"github.com/splitpay/splitpay/internal/settlement"
)

// Summary is everything a rendered report needs. Names maps member IDs to
// display names; IDs without an entry are printed as-is.
type Summary struct {
	Title       string
	Currency    string
	GeneratedAt time.Time
	TotalSpent  float64
	Balances    []settlement.MemberBalance
	Transfers   []models.Transfer
	Names       map[string]string
}

func (s Summary) name(id string) string {
	if name, ok := s.Names[id]; ok && name != "" {
		return name
	}
	return id
}

// WritePDF renders the summary as a single-page A4 PDF.
func WritePDF(w io.Writer, s Summary) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(s.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, s.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	generated := s.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.CellFormat(0, 6, "Generated "+generated.Format("2 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total spending: %s", s.money(s.TotalSpent)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if len(s.Balances) > 0 {
		writeBalanceTable(pdf, s)
		pdf.Ln(6)
	}

	writeTransferTable(pdf, s)

	return pdf.Output(w)
}

func (s Summary) money(amount float64) string {
	if s.Currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, s.Currency)
}

func writeBalanceTable(pdf *fpdf.Fpdf, s Summary) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Balances", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(70, 7, "Member", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 7, "Paid", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Owes", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Net", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, b := range s.Balances {
		pdf.CellFormat(70, 7, b.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, s.money(b.Paid), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, s.money(b.Owed), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, s.money(b.Net), "1", 1, "R", false, 0, "")
	}
}

func writeTransferTable(pdf *fpdf.Fpdf, s Summary) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Who pays whom", "", 1, "L", false, 0, "")

	if len(s.Transfers) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 7, "All settled up.", "", 1, "L", false, 0, "")
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(70, 7, "From", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, "To", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range s.Transfers {
		pdf.CellFormat(70, 7, s.name(t.From), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, s.name(t.To), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, s.money(t.Amount), "1", 1, "R", false, 0, "")
	}
}
