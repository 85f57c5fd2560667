// Package ocr turns receipt image bytes into recognized text lines.
// AWS Textract is the primary backend; a local tesseract binary is available
// for offline runs.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	BackendTextract  = "textract"
	BackendTesseract = "tesseract"
)

// DefaultTimeout bounds a single OCR call. The registry call carries its own
// timeout; keeping both explicit avoids an unbounded external dependency.
const DefaultTimeout = 30 * time.Second

type Config struct {
	Backend string // BackendTextract | BackendTesseract

	Region  string        // Textract region, default us-east-1
	Timeout time.Duration // per-call bound, default DefaultTimeout

	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "por"
}

// LineExtractor is the text-extraction collaborator of the pipeline: raw
// image bytes in, ordered recognized lines out.
type LineExtractor interface {
	ExtractLines(ctx context.Context, image []byte) ([]string, error)
}

// NewExtractor builds the configured backend. Credential or binary problems
// surface here, before any image is processed.
func NewExtractor(ctx context.Context, cfg Config, logger *slog.Logger) (LineExtractor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	switch cfg.Backend {
	case BackendTextract, "":
		return NewTextractExtractor(ctx, cfg, logger)
	case BackendTesseract:
		return NewTesseractExtractor(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported ocr backend: %q", cfg.Backend)
	}
}
