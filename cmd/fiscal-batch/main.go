package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/fiscal-receipts/internal/categorize"
	"github.com/joseph-ayodele/fiscal-receipts/internal/common"
	"github.com/joseph-ayodele/fiscal-receipts/internal/export"
	"github.com/joseph-ayodele/fiscal-receipts/internal/ingest"
	"github.com/joseph-ayodele/fiscal-receipts/internal/logging"
	"github.com/joseph-ayodele/fiscal-receipts/internal/ocr"
	"github.com/joseph-ayodele/fiscal-receipts/internal/pipeline"
	"github.com/joseph-ayodele/fiscal-receipts/internal/registry"
	"github.com/joseph-ayodele/fiscal-receipts/internal/report"
	"github.com/joseph-ayodele/fiscal-receipts/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir      = flag.String("dir", "", "directory with receipt images (required)")
		out      = flag.String("out", "", "detailed report path (default: <dir parent>/fiscal_report.txt)")
		xlsxPath = flag.String("xlsx", "", "optional XLSX export path")
		region   = flag.String("region", "", "AWS region override for Textract")
		noStore  = flag.Bool("no-store", false, "skip writing results to the database")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "fiscal_report.txt")
	}

	logger := logging.Setup(logging.DefaultConfig())
	ctx := context.Background()

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *region != "" {
		cfg.OCR.Region = *region
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Startup credential check: a batch should never begin against an OCR
	// backend that cannot authenticate.
	extractor, err := ocr.NewExtractor(ctx, ocr.Config{
		Backend:       cfg.OCR.Backend,
		Region:        cfg.OCR.Region,
		Timeout:       cfg.OCR.Timeout,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize OCR backend", "backend", cfg.OCR.Backend, "error", err)
		printError("Error: OCR backend unavailable: %v\n", err)
		os.Exit(1)
	}

	images, stats, err := ingest.ListImages(*dir)
	if err != nil {
		logger.Error("failed to scan image directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	logger.Info("scan complete", "dir", *dir,
		"scanned", stats.Scanned, "matched", stats.Matched, "failed", stats.Failed)
	if len(images) == 0 {
		printError("No receipt images found in %s\n", *dir)
		os.Exit(1)
	}

	lookup := registry.NewClient(registry.Config{
		BaseURL: cfg.Registry.BaseURL,
		Timeout: cfg.Registry.Timeout,
	}, logger)
	pipe := pipeline.New(extractor, lookup, categorize.New(nil), logger)

	startedAt := time.Now().UTC()
	runID := uuid.New()
	logger.Info("batch start", "run_id", runID.String(), "images", len(images))

	batch := make([]pipeline.Image, 0, len(images))
	for _, path := range images {
		data, err := os.ReadFile(path)
		if err != nil {
			// Unreadable file: degrade to an empty image; the pipeline will
			// produce a no-text record and keep going.
			logger.Warn("failed to read image", "path", path, "error", err)
			data = nil
		}
		batch = append(batch, pipeline.Image{Name: filepath.Base(path), Data: data})
	}
	records := pipe.ProcessBatch(ctx, batch)
	summary := report.Aggregate(records)

	if err := report.WriteConsole(os.Stdout, summary); err != nil {
		logger.Error("failed to render console report", "error", err)
	}

	detail, err := os.Create(*out)
	if err != nil {
		logger.Error("failed to create report file", "path", *out, "error", err)
	} else {
		if err := report.WriteDetailed(detail, summary, records); err != nil {
			logger.Error("failed to write report file", "path", *out, "error", err)
		}
		if err := detail.Close(); err != nil {
			logger.Warn("failed to close report file", "path", *out, "error", err)
		}
	}

	if *xlsxPath != "" {
		xlsxBytes, err := export.NewService(logger).ExportXLSX(summary, records)
		if err != nil {
			logger.Error("failed to export XLSX", "error", err)
		} else if err := os.WriteFile(*xlsxPath, xlsxBytes, 0o644); err != nil {
			logger.Error("failed to write XLSX file", "path", *xlsxPath, "error", err)
		}
	}

	if !*noStore {
		storeCfg := repository.Config{DSN: cfg.Storage.DSN, SQLitePath: cfg.Storage.SQLitePath}
		db, err := repository.Open(ctx, storeCfg, logger)
		if err != nil {
			// Storage is best-effort; the report files already exist.
			logger.Warn("results database unavailable", "error", err)
		} else {
			runs := repository.NewRunRepository(db, repository.IsPostgres(storeCfg), logger)
			if err := runs.SaveRun(ctx, runID, startedAt, summary, records); err != nil {
				logger.Warn("failed to save run", "error", err)
			}
			if err := db.Close(); err != nil {
				logger.Warn("failed to close database", "error", err)
			}
		}
	}

	logger.Info("batch complete",
		"run_id", runID.String(),
		"receipts", summary.ReceiptCount,
		"grand_total", summary.GrandTotal.Decimal(),
		"report", *out,
	)

	fmt.Printf("\nProcessed %d receipts, total %s\n", summary.ReceiptCount, summary.GrandTotal)
	fmt.Printf("Detailed report: %s\n", *out)
}
