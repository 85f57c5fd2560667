package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/fiscal-receipts/internal/entity"
	"github.com/joseph-ayodele/fiscal-receipts/internal/report"
)

type RunRepository interface {
	SaveRun(ctx context.Context, runID uuid.UUID, startedAt time.Time, summary report.Summary, records []entity.ReceiptRecord) error
	CountRuns(ctx context.Context) (int, error)
}

type runRepository struct {
	db       *sql.DB
	postgres bool
	logger   *slog.Logger
}

func NewRunRepository(db *sql.DB, postgres bool, logger *slog.Logger) RunRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &runRepository{db: db, postgres: postgres, logger: logger}
}

// SaveRun writes the run header and all records in one transaction.
func (r *runRepository) SaveRun(ctx context.Context, runID uuid.UUID, startedAt time.Time, summary report.Summary, records []entity.ReceiptRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, r.bind(
		`INSERT INTO runs (id, started_at, finished_at, receipt_count, grand_total_centavos)
		 VALUES (?, ?, ?, ?, ?)`),
		runID.String(), startedAt.UTC(), time.Now().UTC(),
		summary.ReceiptCount, int64(summary.GrandTotal),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	insert := r.bind(
		`INSERT INTO receipts (id, run_id, file_name, cnpj, company_name, activity,
		 amount_centavos, category, error, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, rec := range records {
		var companyName, activityDesc *string
		if rec.Company != nil {
			companyName = &rec.Company.LegalName
			activityDesc = &rec.Company.Activity
		}
		var recErr *string
		if rec.Err != "" {
			recErr = &rec.Err
		}
		_, err = tx.ExecContext(ctx, insert,
			rec.ID.String(), runID.String(), rec.FileName, rec.CNPJ,
			companyName, activityDesc,
			int64(rec.Amount), string(rec.Category), recErr, rec.ProcessedAt,
		)
		if err != nil {
			return fmt.Errorf("insert receipt %s: %w", rec.FileName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.logger.Info("storage.run.saved", "run_id", runID.String(), "receipts", len(records))
	return nil
}

func (r *runRepository) CountRuns(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

// bind rewrites ? placeholders to $1..$n for postgres; SQLite takes ? as-is.
func (r *runRepository) bind(query string) string {
	if !r.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
