package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// BiltParser handles Bilt Mastercard statements.
//
// Transactions are listed under a column header and run until a summary
// section starts:
//
//	Trans Date Post Date Reference Number Transaction ID Description Amount
//	07/26 07/26 230001700 5270487K10PYZ1F85 CHICK-FIL-A WASHINGTON DC $13.74
//	07/29 07/30 230001701 8817263J22QWE9A01 PAYMENT THANK YOU $500.00-
//	Fees Charged
//
// Section state is kept across pages, so a listing that continues on the
// next page without repeating the header is still extracted.
type BiltParser struct {
	HeaderMarkers     []string
	SectionEndMarkers []string
	ContinuedMarker   string

	// Year is appended to MM/DD dates. Zero means the year of Now().
	Year int
	Now  func() time.Time
	Log  logrus.FieldLogger
}

var (
	DefaultBiltHeaderMarkers     = []string{"Trans Date", "Post Date", "Amount"}
	DefaultBiltSectionEndMarkers = []string{
		"Cash Advances",
		"Fees Charged",
		"Interest Charged",
		"2024 Totals",
		"BiltProtect Summary",
	}
)

const DefaultBiltContinuedMarker = "Continued on next page"

var (
	biltStartPattern  = regexp.MustCompile(`^\d{2}/\d{2}`)
	biltLinePattern   = regexp.MustCompile(`^(\d{2}/\d{2})\s+(\d{2}/\d{2})\s+([A-Za-z0-9]+)\s+([A-Za-z0-9]+)\s+(.+)$`)
	biltAmountPattern = regexp.MustCompile(`\$[\d,]+\.?\d*-?`)
)

// NewBiltParser returns a parser with the default markers.
func NewBiltParser() *BiltParser {
	return &BiltParser{
		HeaderMarkers:     DefaultBiltHeaderMarkers,
		SectionEndMarkers: DefaultBiltSectionEndMarkers,
		ContinuedMarker:   DefaultBiltContinuedMarker,
	}
}

func (p *BiltParser) FormatName() string {
	return "Bilt Mastercard"
}

func (p *BiltParser) Parse(pages []string) (*models.Statement, error) {
	info := &models.Statement{Format: models.FormatBilt}
	log := p.logger()

	inSection := false
	for n, page := range pages {
		lines := pageLines(page)
		if len(lines) == 0 {
			log.WithField("page", n+1).Debug("page has no text, skipping")
			continue
		}

		for i, line := range lines {
			if containsAll(line, p.headerMarkers()) {
				log.WithField("page", n+1).Info("found transaction header")
				inSection = true
				continue
			}
			if !inSection {
				continue
			}

			if p.ContinuedMarker != "" && strings.Contains(line, p.ContinuedMarker) {
				continue
			}
			if marker, ok := containsAny(line, p.sectionEndMarkers()); ok {
				log.WithFields(logrus.Fields{"page": n + 1, "marker": marker}).Info("end of transaction section")
				inSection = false
				continue
			}

			if line == "" || !biltStartPattern.MatchString(line) {
				continue
			}
			if txn, ok := p.ExtractTransaction(lines, i); ok {
				info.CardTransactions = append(info.CardTransactions, txn)
			}
		}
	}

	return info, nil
}

// ExtractTransaction parses the transaction whose first line is lines[i],
// appending any continuation lines to its description. ok is false when
// the line does not have the five-field shape, does not end in an amount,
// or its amount is invalid. Earlier amounts stay in the description.
func (p *BiltParser) ExtractTransaction(lines []string, i int) (models.CardTransaction, bool) {
	line := strings.TrimSpace(lines[i])
	m := biltLinePattern.FindStringSubmatch(line)
	if m == nil {
		return models.CardTransaction{}, false
	}
	tail := m[5]

	locs := biltAmountPattern.FindAllStringIndex(tail, -1)
	if len(locs) == 0 {
		return models.CardTransaction{}, false
	}
	last := locs[len(locs)-1]
	if last[1] != len(strings.TrimRight(tail, " \t")) {
		return models.CardTransaction{}, false
	}
	amountText := tail[last[0]:last[1]]

	parts := []string{tail[:last[0]]}
	for j := i + 1; j < len(lines); j++ {
		next := strings.TrimSpace(lines[j])
		if !p.isContinuation(next) {
			break
		}
		parts = append(parts, next)
	}

	amount, err := parseAmount(amountText)
	if err != nil {
		p.logger().WithFields(logrus.Fields{"amount": amountText, "line": line}).
			Warnf("could not parse amount: %v", err)
		return models.CardTransaction{}, false
	}

	year := strconv.Itoa(p.year())
	txn := models.CardTransaction{
		TransDate:       m[1] + "/" + year,
		PostDate:        m[2] + "/" + year,
		ReferenceNumber: m[3],
		TransactionID:   m[4],
		Description:     joinDescription(parts),
		Amount:          amount,
	}

	p.logger().WithFields(logrus.Fields{
		"trans_date":  txn.TransDate,
		"description": txn.Description,
		"amount":      txn.Amount.String(),
	}).Debug("extracted transaction")

	return txn, true
}

func (p *BiltParser) isContinuation(line string) bool {
	if line == "" || biltStartPattern.MatchString(line) {
		return false
	}
	if p.ContinuedMarker != "" && strings.Contains(line, p.ContinuedMarker) {
		return false
	}
	_, isEnd := containsAny(line, p.sectionEndMarkers())
	return !isEnd
}

func (p *BiltParser) year() int {
	if p.Year != 0 {
		return p.Year
	}
	if p.Now != nil {
		return p.Now().Year()
	}
	return time.Now().Year()
}

func (p *BiltParser) headerMarkers() []string {
	if len(p.HeaderMarkers) == 0 {
		return DefaultBiltHeaderMarkers
	}
	return p.HeaderMarkers
}

func (p *BiltParser) sectionEndMarkers() []string {
	if len(p.SectionEndMarkers) == 0 {
		return DefaultBiltSectionEndMarkers
	}
	return p.SectionEndMarkers
}

func (p *BiltParser) logger() logrus.FieldLogger {
	if p.Log == nil {
		return logrus.StandardLogger()
	}
	return p.Log
}
