package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/fiscal-receipts/internal/entity"
)

// valueToken matches one monetary token. Thousand-separated alternatives come
// first so "1.234,56" is captured whole rather than as "1.23".
const valueToken = `(\d{1,3}(?:\.\d{3})+,\d{2}|\d{1,3}(?:,\d{3})+\.\d{2}|\d{1,6}[.,]?\d{2})`

// amountPattern is one entry of the ordered pattern list, most contextual
// first. All patterns run on every line; context only affects the weight,
// which is a property of the line, so the declared order decides nothing
// beyond which pattern reports a candidate first.
type amountPattern struct {
	name string
	re   *regexp.Regexp
}

var totalKeywords = []string{"TOTAL", "VALOR TOTAL", "TOTAL GERAL"}

// Candidate weights. The total line of a receipt is usually keyword-marked,
// currency-marked, and ends with the printed amount.
const (
	weightBase         = 1
	weightTotalKeyword = 10
	weightCurrency     = 5
	weightTrailing     = 3
)

// AmountExtractor finds the purchase total in OCR line output. Lines are
// scanned independently so a decimal split across lines never forms a value.
type AmountExtractor struct {
	patterns []amountPattern
	logger   *slog.Logger
}

func NewAmountExtractor(logger *slog.Logger) *AmountExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &AmountExtractor{
		logger: logger,
		patterns: []amountPattern{
			{"total-keyword", regexp.MustCompile(`(?i)(?:TOTAL|VALOR\s*TOTAL|TOTAL\s*GERAL)[:\s]*R?\$?\s*` + valueToken)},
			{"value-keyword", regexp.MustCompile(`(?i)(?:TOTAL|VALOR)[:\s]*R?\$?\s*` + valueToken)},
			{"currency-rs", regexp.MustCompile(`(?i)R\$\s*` + valueToken)},
			{"currency-plain", regexp.MustCompile(`(?i)RS\s*` + valueToken)},
			{"line-end", regexp.MustCompile(valueToken + `\s*$`)},
			{"isolated", regexp.MustCompile(`(?:^|\s)(\d{1,3}(?:\.\d{3})+,\d{2}|\d{1,4}[.,]\d{2})(?:\s|$)`)},
		},
	}
}

type candidate struct {
	value  entity.Centavos
	weight int
}

// Extract returns the best amount candidate, or zero when no line yields one.
// Pure function of the line slice; selection is max weight, ties broken by
// the larger value.
func (e *AmountExtractor) Extract(lines []string) entity.Centavos {
	var cands []candidate
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cands = append(cands, e.scanLine(line)...)
	}
	if len(cands) == 0 {
		return 0
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.weight > best.weight || (c.weight == best.weight && c.value > best.value) {
			best = c
		}
	}
	e.logger.Debug("amount.selected", "value", best.value.Decimal(), "weight", best.weight, "candidates", len(cands))
	return best.value
}

func (e *AmountExtractor) scanLine(line string) []candidate {
	var out []candidate
	for _, p := range e.patterns {
		for _, groups := range p.re.FindAllStringSubmatch(line, -1) {
			value, err := ParseCentavos(groups[1])
			if err != nil {
				continue
			}
			if value < entity.MinAmount || value > entity.MaxAmount {
				continue
			}
			out = append(out, candidate{value: value, weight: lineWeight(line, value)})
		}
	}
	return out
}

func lineWeight(line string, value entity.Centavos) int {
	weight := weightBase
	upper := strings.ToUpper(line)
	for _, kw := range totalKeywords {
		if strings.Contains(upper, kw) {
			weight += weightTotalKeyword
			break
		}
	}
	if strings.Contains(line, "R$") || strings.Contains(line, "RS") {
		weight += weightCurrency
	}
	if strings.HasSuffix(strings.TrimSpace(line), value.CommaDecimal()) {
		weight += weightTrailing
	}
	return weight
}

// ParseCentavos normalizes a matched token into centavos. When both
// separators occur the last one is the decimal point and the other is a
// thousands separator; a lone comma is a decimal point; a token with no
// separator is a whole amount in reais.
func ParseCentavos(tok string) (entity.Centavos, error) {
	lastDot := strings.LastIndex(tok, ".")
	lastComma := strings.LastIndex(tok, ",")

	s := tok
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" {
		return 0, fmt.Errorf("malformed amount token %q", tok)
	}
	reais, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", tok, err)
	}
	cents := reais * 100
	if hasFrac {
		if len(fracPart) == 0 || len(fracPart) > 2 {
			return 0, fmt.Errorf("malformed amount token %q", tok)
		}
		frac, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", tok, err)
		}
		if len(fracPart) == 1 {
			frac *= 10
		}
		cents += frac
	}
	return entity.Centavos(cents), nil
}
