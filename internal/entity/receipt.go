package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/fiscal-receipts/constants"
)

// Centavos is a monetary amount in hundredths of a real. Receipt amounts are
// non-negative and bounded to [0.01, 999999.99] by the extractor.
type Centavos int64

// MinAmount and MaxAmount bound what the amount extractor accepts.
const (
	MinAmount Centavos = 1
	MaxAmount Centavos = 99999999
)

func (c Centavos) String() string {
	return "R$ " + c.Decimal()
}

// Decimal renders the amount with a dot decimal separator, e.g. "1234.56".
func (c Centavos) Decimal() string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}

// CommaDecimal renders the amount with a comma decimal separator, e.g. "1234,56".
func (c Centavos) CommaDecimal() string {
	return fmt.Sprintf("%d,%02d", c/100, c%100)
}

func (c Centavos) Float() float64 {
	return float64(c) / 100
}

// CompanyInfo is the registry view of a company keyed by CNPJ.
type CompanyInfo struct {
	LegalName string `json:"legal_name"`
	Activity  string `json:"activity"`
	CNAECode  string `json:"cnae_code,omitempty"`
}

// ReceiptRecord is the outcome of processing one receipt image. It is created
// once per image and only updated during enrichment (CNPJ, then company info,
// then category, in that order).
type ReceiptRecord struct {
	ID          uuid.UUID          `json:"id"`
	FileName    string             `json:"file_name"`
	CNPJ        *string            `json:"cnpj,omitempty"`
	Amount      Centavos           `json:"amount_centavos"`
	Company     *CompanyInfo       `json:"company,omitempty"`
	Category    constants.Category `json:"category"`
	Lines       []string           `json:"-"`
	ProcessedAt time.Time          `json:"processed_at"`
	Err         string             `json:"error,omitempty"`
}

// NewRecord returns a fresh record for an image, before enrichment.
func NewRecord(fileName string) ReceiptRecord {
	return ReceiptRecord{
		ID:          uuid.New(),
		FileName:    fileName,
		Category:    constants.Other,
		ProcessedAt: time.Now().UTC(),
	}
}

// ErrorRecord is the degraded record produced when processing an image fails
// outright. The batch keeps going; the failure is visible in the report.
func ErrorRecord(fileName string, cause error) ReceiptRecord {
	rec := NewRecord(fileName)
	rec.Company = &CompanyInfo{LegalName: "processing error", Activity: "error"}
	if cause != nil {
		rec.Err = cause.Error()
	}
	return rec
}
