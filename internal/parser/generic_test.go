package parser

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

func TestGenericParser_StartLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.Transaction
	}{
		{
			name: "amount with dollar sign",
			line: "01/15/24 GROCERY STORE $45.23",
			want: models.Transaction{Date: "01/15/24", Description: "GROCERY STORE", Amount: "45.23"},
		},
		{
			name: "no amount",
			line: "01/15/24 MEMO ONLY",
			want: models.Transaction{Date: "01/15/24", Description: "MEMO ONLY", Amount: ""},
		},
		{
			name: "thousands separator without dollar sign",
			line: "02/01/24 RENT PAYMENT 1,250.00",
			want: models.Transaction{Date: "02/01/24", Description: "RENT PAYMENT", Amount: "1,250.00"},
		},
		{
			name: "date only",
			line: "02/01/24",
			want: models.Transaction{Date: "02/01/24"},
		},
		{
			name: "amount runs into date",
			line: "02/01/245.00",
			want: models.Transaction{Date: "02/01/24", Amount: "245.00"},
		},
	}

	p := &GenericParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ParseLines([]string{tt.line})
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestGenericParser_Continuation(t *testing.T) {
	lines := []string{
		"Statement Period 01/01/24 - 01/31/24",
		"01/15/24 ONLINE TRANSFER $100.00",
		"TO SAVINGS",
		"REF 8841",
		"",
		"page footer text",
		"01/16/24 COFFEE $4.50",
		"t",
		"trailing text",
		"01/17/24 BOOKSHOP",
		"MAIN ST",
		"01/18/24 FUEL $30.00",
	}

	got := (&GenericParser{}).ParseLines(lines)
	want := []models.Transaction{
		{Date: "01/15/24", Description: "ONLINE TRANSFER TO SAVINGS REF 8841", Amount: "100.00"},
		{Date: "01/16/24", Description: "COFFEE", Amount: "4.50"},
		{Date: "01/17/24", Description: "BOOKSHOP MAIN ST"},
		{Date: "01/18/24", Description: "FUEL", Amount: "30.00"},
	}
	assert.Equal(t, want, got)
}

func TestGenericParser_TerminatorIsCaseInsensitive(t *testing.T) {
	lines := []string{"03/02/24 PHARMACY $12.00", "T", "NOT PART OF IT"}
	got := (&GenericParser{}).ParseLines(lines)
	require.Len(t, got, 1)
	assert.Equal(t, "PHARMACY", got[0].Description)
}

func TestGenericParser_CustomTerminator(t *testing.T) {
	lines := []string{"03/02/24 PHARMACY $12.00", "t", "END", "ignored"}
	got := (&GenericParser{Terminator: "end"}).ParseLines(lines)
	require.Len(t, got, 1)
	assert.Equal(t, "PHARMACY t", got[0].Description)
}

func TestGenericParser_EmptyDescriptionContinues(t *testing.T) {
	got := (&GenericParser{}).ParseLines([]string{"04/01/24 $9.99", "STREAMING SERVICE"})
	require.Len(t, got, 1)
	assert.Equal(t, "STREAMING SERVICE", got[0].Description)
	assert.Equal(t, "9.99", got[0].Amount)
}

func TestGenericParser_NoTransactions(t *testing.T) {
	info, err := (&GenericParser{}).Parse([]string{"Account summary\nNothing dated here", ""})
	require.NoError(t, err)
	assert.Equal(t, models.FormatGeneric, info.Format)
	assert.Zero(t, info.Count())
}

func TestGenericParser_PagesAndIdempotence(t *testing.T) {
	pages := []string{
		"  01/15/24 GROCERY STORE $45.23  \n  ORGANIC AISLE\r\n",
		"",
		"01/20/24 GYM $25.00\nMONTHLY",
	}
	p := &GenericParser{}

	first, err := p.Parse(pages)
	require.NoError(t, err)
	second, err := p.Parse(pages)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Equal(t, 2, first.Count())
	assert.Equal(t, "GROCERY STORE ORGANIC AISLE", first.Transactions[0].Description)
	assert.Equal(t, "GYM MONTHLY", first.Transactions[1].Description)

	datePrefix := regexp.MustCompile(`^\d{2}/\d{2}/\d{2}$`)
	for _, txn := range first.Transactions {
		assert.Regexp(t, datePrefix, txn.Date)
	}
}
