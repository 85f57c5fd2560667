// Package pipeline coordinates per-receipt processing: OCR, field
// extraction, registry enrichment and categorization. Images are processed
// one at a time; a failure degrades that image's record and never stops the
// batch.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/fiscal-receipts/internal/categorize"
	"github.com/joseph-ayodele/fiscal-receipts/internal/entity"
	"github.com/joseph-ayodele/fiscal-receipts/internal/extract"
	"github.com/joseph-ayodele/fiscal-receipts/internal/ocr"
)

// CompanyLookup is the registry collaborator. A nil result with an error
// means "not found"; the pipeline treats it as absence.
type CompanyLookup interface {
	Lookup(ctx context.Context, cnpj string) (*entity.CompanyInfo, error)
}

// Image pairs a display name with raw image bytes supplied by the source
// collaborator.
type Image struct {
	Name string
	Data []byte
}

type Pipeline struct {
	Extractor   ocr.LineExtractor
	CNPJ        *extract.CNPJExtractor
	Amount      *extract.AmountExtractor
	Registry    CompanyLookup
	Categorizer *categorize.Categorizer
	Logger      *slog.Logger
}

func New(ex ocr.LineExtractor, registry CompanyLookup, cat *categorize.Categorizer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Extractor:   ex,
		CNPJ:        extract.NewCNPJExtractor(logger),
		Amount:      extract.NewAmountExtractor(logger),
		Registry:    registry,
		Categorizer: cat,
		Logger:      logger,
	}
}

// ProcessImage runs one image through the full chain. Enrichment order is
// fixed: identifier, then company info, then category. OCR failure degrades
// to an empty line set; registry failure degrades to an absent company.
func (p *Pipeline) ProcessImage(ctx context.Context, img Image) (rec entity.ReceiptRecord) {
	defer func() {
		if r := recover(); r != nil {
			p.Logger.Error("pipeline.image.panic", "file", img.Name, "panic", r)
			rec = entity.ErrorRecord(img.Name, fmt.Errorf("panic: %v", r))
		}
	}()

	lines, err := p.Extractor.ExtractLines(ctx, img.Data)
	if err != nil {
		p.Logger.Warn("pipeline.ocr.failed", "file", img.Name, "error", err)
		lines = nil
	}

	rec = entity.NewRecord(img.Name)
	rec.Lines = lines
	rec.Amount = p.Amount.Extract(lines)

	cnpj, found := p.CNPJ.Extract(lines)
	if !found {
		p.Logger.Info("pipeline.image.ok",
			"file", img.Name, "cnpj", "not found", "amount", rec.Amount.Decimal())
		return rec
	}
	rec.CNPJ = &cnpj

	info, err := p.Registry.Lookup(ctx, cnpj)
	if err != nil {
		p.Logger.Warn("pipeline.registry.failed", "file", img.Name, "cnpj", cnpj, "error", err)
	} else {
		rec.Company = info
		rec.Category = p.Categorizer.Categorize(info.Activity)
	}

	p.Logger.Info("pipeline.image.ok",
		"file", img.Name,
		"cnpj", cnpj,
		"amount", rec.Amount.Decimal(),
		"company", companyName(rec),
		"category", rec.Category,
	)
	return rec
}

// ProcessBatch processes images sequentially and returns one record per
// image. Per-image failure isolation: the batch always runs to completion.
func (p *Pipeline) ProcessBatch(ctx context.Context, images []Image) []entity.ReceiptRecord {
	records := make([]entity.ReceiptRecord, 0, len(images))
	for i, img := range images {
		p.Logger.Info("pipeline.image.start", "file", img.Name, "index", i+1, "total", len(images))
		records = append(records, p.ProcessImage(ctx, img))
	}
	return records
}

func companyName(rec entity.ReceiptRecord) string {
	if rec.Company == nil {
		return ""
	}
	return rec.Company.LegalName
}
