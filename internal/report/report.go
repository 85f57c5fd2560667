// Package report folds processed receipt records into category totals and
// renders the console summary and the detailed report file. Both renderers
// share one Summary so their numbers cannot drift apart.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/joseph-ayodele/fiscal-receipts/constants"
	"github.com/joseph-ayodele/fiscal-receipts/internal/entity"
)

const barWidth = 30

type CategoryTotal struct {
	Category constants.Category
	Total    entity.Centavos
}

// Summary is the read-only aggregate of one finished batch.
type Summary struct {
	GrandTotal   entity.Centavos
	Totals       []CategoryTotal // descending by total; ties keep encounter order
	ReceiptCount int
}

// Aggregate sums amounts per category over a finished batch. Categories are
// kept in first-encounter order before the stable descending sort, so equal
// totals stay deterministic.
func Aggregate(records []entity.ReceiptRecord) Summary {
	totals := make(map[constants.Category]entity.Centavos)
	var order []constants.Category

	s := Summary{ReceiptCount: len(records)}
	for _, rec := range records {
		if _, seen := totals[rec.Category]; !seen {
			order = append(order, rec.Category)
		}
		totals[rec.Category] += rec.Amount
		s.GrandTotal += rec.Amount
	}

	s.Totals = make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		s.Totals = append(s.Totals, CategoryTotal{Category: cat, Total: totals[cat]})
	}
	sort.SliceStable(s.Totals, func(i, j int) bool {
		return s.Totals[i].Total > s.Totals[j].Total
	})
	return s
}

func (s Summary) percent(v entity.Centavos) float64 {
	if s.GrandTotal == 0 {
		return 0
	}
	return v.Float() / s.GrandTotal.Float() * 100
}

func (s Summary) maxTotal() entity.Centavos {
	var max entity.Centavos
	for _, t := range s.Totals {
		if t.Total > max {
			max = t.Total
		}
	}
	return max
}

// WriteConsole renders the on-screen summary: grand total, then each
// non-zero category with its share and a bar proportional to the largest
// category.
func WriteConsole(w io.Writer, s Summary) error {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	b.WriteString("EXPENSES BY CATEGORY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "GRAND TOTAL: %s\n", s.GrandTotal)

	if s.GrandTotal > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", 40) + "\n")
		max := s.maxTotal()
		for _, t := range s.Totals {
			if t.Total == 0 {
				continue
			}
			fmt.Fprintf(&b, "%-20s R$ %9s (%5.1f%%)\n",
				t.Category, t.Total.Decimal(), s.percent(t.Total))
			bar := int(int64(t.Total) * barWidth / int64(max))
			fmt.Fprintf(&b, "%-20s %s\n", "", strings.Repeat("█", bar))
		}
	}
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDetailed renders the report file: per-receipt blocks followed by the
// category summary. Zero-total categories stay visible here.
func WriteDetailed(w io.Writer, s Summary, records []entity.ReceiptRecord) error {
	var b strings.Builder
	rule := strings.Repeat("-", 50)

	b.WriteString("DETAILED FISCAL REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "GRAND TOTAL: %s\n", s.GrandTotal)
	fmt.Fprintf(&b, "RECEIPTS: %d\n\n", s.ReceiptCount)

	b.WriteString("DETAILS PER RECEIPT:\n")
	b.WriteString(rule + "\n")
	for i, rec := range records {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, rec.FileName)
		fmt.Fprintf(&b, "   CNPJ: %s\n", cnpjOrNotFound(rec))
		fmt.Fprintf(&b, "   Company: %s\n", companyName(rec))
		fmt.Fprintf(&b, "   Amount: %s\n", rec.Amount)
		fmt.Fprintf(&b, "   Category: %s\n", rec.Category)
		fmt.Fprintf(&b, "   Activity: %s\n", activity(rec))
	}

	b.WriteString("\n\nSUMMARY BY CATEGORY:\n")
	b.WriteString(rule + "\n")
	seen := make(map[constants.Category]bool, len(s.Totals))
	for _, t := range s.Totals {
		seen[t.Category] = true
		fmt.Fprintf(&b, "%s: %s (%.1f%%)\n", t.Category, t.Total, s.percent(t.Total))
	}
	for _, cat := range constants.AllCategories() {
		if !seen[cat] {
			fmt.Fprintf(&b, "%s: %s (0.0%%)\n", cat, entity.Centavos(0))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func cnpjOrNotFound(rec entity.ReceiptRecord) string {
	if rec.CNPJ == nil {
		return "not found"
	}
	return *rec.CNPJ
}

func companyName(rec entity.ReceiptRecord) string {
	if rec.Company == nil {
		return "not identified"
	}
	return rec.Company.LegalName
}

func activity(rec entity.ReceiptRecord) string {
	if rec.Company == nil || rec.Company.Activity == "" {
		return "not identified"
	}
	return rec.Company.Activity
}
