package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

const defaultRegion = "us-east-1"

// TextractExtractor recognizes text with AWS Textract DetectDocumentText.
type TextractExtractor struct {
	client  *textract.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewTextractExtractor loads the default AWS credential chain and verifies it
// with a caller-identity call. Missing credentials are fatal to the run; no
// partial processing is attempted against a client that cannot authenticate.
func NewTextractExtractor(ctx context.Context, cfg Config, logger *slog.Logger) (*TextractExtractor, error) {
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	ident, err := sts.NewFromConfig(awsCfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("aws credentials check: %w", err)
	}
	if ident.Account != nil {
		logger.Info("ocr.textract.ready", "region", cfg.Region, "account", *ident.Account)
	}

	return &TextractExtractor{
		client:  textract.NewFromConfig(awsCfg),
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// ExtractLines returns the LINE blocks of the document in detection order.
func (e *TextractExtractor) ExtractLines(ctx context.Context, image []byte) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	out, err := e.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: image},
	})
	if err != nil {
		e.logger.Warn("ocr.textract.failed", "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("textract detect: %w", err)
	}

	var lines []string
	for _, block := range out.Blocks {
		if block.BlockType == types.BlockTypeLine && block.Text != nil {
			lines = append(lines, *block.Text)
		}
	}
	e.logger.Debug("ocr.textract.ok", "lines", len(lines),
		"elapsed_ms", time.Since(start).Milliseconds())
	return lines, nil
}
