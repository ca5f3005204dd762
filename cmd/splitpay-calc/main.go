// Command splitpay-calc splits a one-off expense list without a server:
// give it who paid what and it prints who owes whom.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"

	"github.com/splitpay/splitpay/internal/models"
	"github.com/splitpay/splitpay/internal/report"
	"github.com/splitpay/splitpay/internal/settlement"
)

var (
	pdfPath  string
	currency string
)

var rootCmd = &cobra.Command{
	Use:   "splitpay-calc",
	Short: "Offline expense splitter",
	Long:  "Split shared expenses among a group of people and print the minimal set of repayments.",
}

var planCmd = &cobra.Command{
	Use:   "plan NAME:AMOUNT [NAME:AMOUNT...]",
	Short: "Compute who owes whom for an equal split",
	Example: `  splitpay-calc plan Alice:120 Bob:30 Carol:0
  splitpay-calc plan Alice:300 Bob:0 --pdf trip.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := parseEntries(args)
		if err != nil {
			return err
		}

		members, expenses := settlement.ManualScenario(entries)
		if len(members) == 0 {
			return fmt.Errorf("no valid entries given")
		}

		balances := settlement.MemberBalances(expenses, members)
		transfers := settlement.Compute(expenses, members)

		var total float64
		for _, e := range expenses {
			total += e.Amount
		}

		names := make(map[string]string, len(members))
		for _, m := range members {
			names[m.ID] = m.Name
		}

		fmt.Printf("Total spending: %s\n\n", money(total))
		fmt.Println("Balances:")
		for _, b := range balances {
			fmt.Printf("  %-20s paid %10s   net %+10s\n", b.Name, money(b.Paid), money(b.Net))
		}

		fmt.Println("\nWho pays whom:")
		if len(transfers) == 0 {
			fmt.Println("  All settled up.")
		}
		for _, t := range transfers {
			fmt.Printf("  %s pays %s %s\n", names[t.From], names[t.To], money(t.Amount))
		}

		if pdfPath != "" {
			if err := writePDF(pdfPath, total, balances, transfers, names); err != nil {
				return err
			}
			fmt.Printf("\nReport written to %s\n", pdfPath)
		}
		return nil
	},
}

func parseEntries(args []string) ([]settlement.ManualEntry, error) {
	entries := make([]settlement.ManualEntry, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("invalid entry %q: expected NAME:AMOUNT", arg)
		}
		amount, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in %q: %v", arg, err)
		}
		if amount < 0 {
			return nil, fmt.Errorf("invalid amount in %q: must not be negative", arg)
		}
		entries = append(entries, settlement.ManualEntry{Name: name, Amount: amount})
	}
	return entries, nil
}

func money(amount float64) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func writePDF(path string, total float64, balances []settlement.MemberBalance, transfers []models.Transfer, names map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return report.WritePDF(f, report.Summary{
		Title:       "Settlement Report",
		Currency:    currency,
		GeneratedAt: time.Now(),
		TotalSpent:  total,
		Balances:    balances,
		Transfers:   transfers,
		Names:       names,
	})
}

func main() {
	planCmd.Flags().StringVar(&pdfPath, "pdf", "", "also write the plan as a PDF report to this path")
	planCmd.Flags().StringVar(&currency, "currency", "", "currency label to print after amounts")
	rootCmd.AddCommand(planCmd)

	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
