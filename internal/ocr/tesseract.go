package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TesseractExtractor shells out to a local tesseract binary. Useful for runs
// without cloud credentials; accuracy on thermal-printer receipts is lower
// than Textract.
type TesseractExtractor struct {
	binary  string
	lang    string
	timeout time.Duration
	runner  Runner
	logger  *slog.Logger
}

func NewTesseractExtractor(cfg Config, logger *slog.Logger) *TesseractExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "por"
	}
	return &TesseractExtractor{
		binary:  cfg.Tesseract,
		lang:    cfg.TesseractLang,
		timeout: cfg.Timeout,
		runner:  execRunner{},
		logger:  logger,
	}
}

// ExtractLines writes the image to a temp file and runs
// `tesseract <file> stdout -l <lang>`, splitting stdout into trimmed lines.
func (e *TesseractExtractor) ExtractLines(ctx context.Context, image []byte) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "fr-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	in := filepath.Join(tmpDir, "receipt.img")
	if err := os.WriteFile(in, image, 0o600); err != nil {
		return nil, fmt.Errorf("write temp image: %w", err)
	}

	start := time.Now()
	out, errb, err := e.runner.Run(ctx, e.binary, in, "stdout", "-l", e.lang)
	if err != nil {
		e.logger.Warn("ocr.tesseract.failed", "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("tesseract: %w (stderr: %s)", err, truncate(string(errb), 512))
	}

	lines := SplitLines(string(out))
	e.logger.Debug("ocr.tesseract.ok", "lines", len(lines),
		"elapsed_ms", time.Since(start).Milliseconds())
	return lines, nil
}

// SplitLines breaks OCR output into trimmed non-empty lines.
func SplitLines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}
