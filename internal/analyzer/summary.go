// Package analyzer reports totals for extracted card transactions.
package analyzer

import (
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

const previewSize = 5

// Summary is an observational digest of a transaction list.
type Summary struct {
	Count    int                      `json:"count"`
	Total    decimal.Decimal          `json:"total"`
	Debits   decimal.Decimal          `json:"debits"`  // sum of positive amounts
	Credits  decimal.Decimal          `json:"credits"` // sum of negative amounts
	Earliest string                   `json:"earliest"`
	Latest   string                   `json:"latest"`
	Preview  []models.CardTransaction `json:"preview"`
}

// Summarize computes totals and the trans_date range. Dates are compared
// as strings, so the range is only meaningful within one year.
func Summarize(txns []models.CardTransaction) Summary {
	s := Summary{Count: len(txns)}
	for i, txn := range txns {
		s.Total = s.Total.Add(txn.Amount)
		switch {
		case txn.Amount.IsPositive():
			s.Debits = s.Debits.Add(txn.Amount)
		case txn.Amount.IsNegative():
			s.Credits = s.Credits.Add(txn.Amount)
		}

		if i == 0 || txn.TransDate < s.Earliest {
			s.Earliest = txn.TransDate
		}
		if i == 0 || txn.TransDate > s.Latest {
			s.Latest = txn.TransDate
		}
	}

	n := min(previewSize, len(txns))
	s.Preview = append([]models.CardTransaction(nil), txns[:n]...)
	return s
}

// Report writes a human-readable summary of txns to w.
func Report(w io.Writer, txns []models.CardTransaction) {
	if len(txns) == 0 {
		fmt.Fprintln(w, color.YellowString("No transactions found."))
		return
	}

	s := Summarize(txns)
	heading := color.New(color.Bold)

	heading.Fprintln(w, "Transaction summary")
	fmt.Fprintf(w, "  Transactions: %d\n", s.Count)
	fmt.Fprintf(w, "  Total:        %s\n", display(s.Total))
	fmt.Fprintf(w, "  Debits:       %s\n", display(s.Debits))
	fmt.Fprintf(w, "  Credits:      %s\n", display(s.Credits))
	fmt.Fprintf(w, "  Date range:   %s to %s\n", s.Earliest, s.Latest)

	heading.Fprintf(w, "First %d transactions\n", len(s.Preview))
	for _, txn := range s.Preview {
		fmt.Fprintf(w, "  %s  %-40s %12s\n", txn.TransDate, txn.Description, display(txn.Amount))
	}
}

func display(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
