package models

import "github.com/shopspring/decimal"

// Transaction is a row from a generic MM/DD/YY statement.
type Transaction struct {
	Date        string `json:"date" csv:"date"`
	Description string `json:"description" csv:"description"`
	Amount      string `json:"amount" csv:"amount"` // empty when the start line carried no amount
}

// CardTransaction is a row from a Bilt credit card statement.
type CardTransaction struct {
	TransDate       string          `json:"trans_date" csv:"trans_date"`
	PostDate        string          `json:"post_date" csv:"post_date"`
	ReferenceNumber string          `json:"reference_number" csv:"reference_number"`
	TransactionID   string          `json:"transaction_id" csv:"transaction_id"`
	Description     string          `json:"description" csv:"description"`
	Amount          decimal.Decimal `json:"amount" csv:"amount"` // negative for credits
}

// Record is any row type the writer knows how to serialize.
type Record interface {
	Transaction | CardTransaction
}

// Format identifies a statement layout.
type Format string

const (
	FormatGeneric Format = "generic"
	FormatBilt    Format = "bilt"
)

// Statement holds the records extracted from one document.
// Only the slice matching Format is populated.
type Statement struct {
	Format           Format
	Transactions     []Transaction
	CardTransactions []CardTransaction
}

// Count returns the number of records for the statement's format.
func (s *Statement) Count() int {
	if s == nil {
		return 0
	}
	if s.Format == FormatBilt {
		return len(s.CardTransactions)
	}
	return len(s.Transactions)
}
