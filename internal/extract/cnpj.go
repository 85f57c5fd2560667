package extract

import (
	"log/slog"
	"regexp"
	"strings"
)

var (
	// Cleanup keeps word characters, whitespace and the separators that occur
	// inside formatted CNPJs; everything else becomes a space.
	rePunct      = regexp.MustCompile(`[^\w\s./-]`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reNonDigit   = regexp.MustCompile(`\D`)
)

// cnpjMatcher is one entry of the ordered pattern list. Matchers run in
// sequence; the first validated candidate wins.
type cnpjMatcher struct {
	name string
	re   *regexp.Regexp
}

const cnpjFormatted = `\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}`

// CNPJExtractor finds a 14-digit CNPJ in OCR line output. Most specific
// pattern first: a keyword anchor beats a bare digit run.
type CNPJExtractor struct {
	matchers []cnpjMatcher
	logger   *slog.Logger
}

func NewCNPJExtractor(logger *slog.Logger) *CNPJExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &CNPJExtractor{
		logger: logger,
		matchers: []cnpjMatcher{
			{"labeled-formatted", regexp.MustCompile(`(?i)CNPJ[:\s]*(` + cnpjFormatted + `)`)},
			{"labeled-raw", regexp.MustCompile(`(?i)CNPJ[:\s]*(\d{14})`)},
			{"isolated-raw", regexp.MustCompile(`(?:^|\s)(\d{14})(?:\s|$)`)},
			{"formatted", regexp.MustCompile(`(\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2})`)},
		},
	}
}

// Extract returns the digits-only CNPJ and whether one was found. Absence is
// not an error: receipts frequently omit or mangle the identifier.
func (e *CNPJExtractor) Extract(lines []string) (string, bool) {
	text := normalizeText(strings.Join(lines, "\n"))
	if text == "" {
		return "", false
	}
	for _, m := range e.matchers {
		for _, groups := range m.re.FindAllStringSubmatch(text, -1) {
			digits := reNonDigit.ReplaceAllString(groups[1], "")
			if len(digits) != 14 {
				continue
			}
			if !ValidCNPJ(digits) {
				e.logger.Debug("cnpj.candidate.rejected", "matcher", m.name, "digits", digits)
				continue
			}
			e.logger.Debug("cnpj.found", "matcher", m.name)
			return digits, true
		}
	}
	return "", false
}

// ValidCNPJ applies the structural checks on a digits-only candidate:
// exactly 14 digits, not a degenerate repeated digit, not a 00000 prefix.
func ValidCNPJ(digits string) bool {
	if len(digits) != 14 {
		return false
	}
	if strings.HasPrefix(digits, "00000") {
		return false
	}
	allSame := true
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			allSame = false
			break
		}
	}
	return !allSame
}

func normalizeText(text string) string {
	text = rePunct.ReplaceAllString(text, " ")
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
