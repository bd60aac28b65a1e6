package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// GenericParser handles statements whose transactions start with an
// MM/DD/YY date and end with an optional dollar amount.
//
//	"01/15/24 GROCERY STORE $45.23"
//	"01/16/24 TRANSFER TO SAVINGS"
//	"REF 8841"                        (continuation)
//
// A description continues over following lines until the next dated
// line, a blank line or a lone terminator token ("t" by default).
type GenericParser struct {
	// Terminator ends a description when a line equals it, case-insensitively.
	Terminator string
}

var (
	genericStartPattern  = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}`)
	genericAmountPattern = regexp.MustCompile(`\$?([\d,]+\.\d{2})$`)
)

const (
	genericDateLen   = 8
	genericDescStart = 9
)

func (p *GenericParser) FormatName() string {
	return "Generic (MM/DD/YY)"
}

func (p *GenericParser) Parse(pages []string) (*models.Statement, error) {
	return &models.Statement{
		Format:       models.FormatGeneric,
		Transactions: p.ParseLines(documentLines(pages)),
	}, nil
}

// ParseLines scans an ordered line sequence and returns transactions in
// the order their start lines appear.
func (p *GenericParser) ParseLines(lines []string) []models.Transaction {
	var transactions []models.Transaction

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if !genericStartPattern.MatchString(line) {
			i++
			continue
		}

		txn := parseGenericStart(line)
		parts := []string{txn.Description}

		j := i + 1
		for ; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if p.isBoundary(next) {
				break
			}
			parts = append(parts, next)
		}
		txn.Description = joinDescription(parts)

		transactions = append(transactions, txn)
		i = j
	}

	return transactions
}

func (p *GenericParser) isBoundary(line string) bool {
	if line == "" || genericStartPattern.MatchString(line) {
		return true
	}
	term := p.Terminator
	if term == "" {
		term = "t"
	}
	return strings.ToLower(line) == strings.ToLower(term)
}

// parseGenericStart splits a start line into date, description and amount.
func parseGenericStart(line string) models.Transaction {
	txn := models.Transaction{Date: line[:genericDateLen]}

	end := len(line)
	if m := genericAmountPattern.FindStringSubmatchIndex(line); m != nil {
		txn.Amount = line[m[2]:m[3]]
		end = m[0]
	}
	if end > genericDescStart {
		txn.Description = strings.TrimSpace(line[genericDescStart:end])
	}
	return txn
}
