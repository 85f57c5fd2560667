package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/fiscal-receipts/constants"
)

func TestCentavosRendering(t *testing.T) {
	assert.Equal(t, "R$ 1234.56", Centavos(123456).String())
	assert.Equal(t, "1234.56", Centavos(123456).Decimal())
	assert.Equal(t, "1234,56", Centavos(123456).CommaDecimal())
	assert.Equal(t, "0.05", Centavos(5).Decimal())
	assert.Equal(t, "0.00", Centavos(0).Decimal())
	assert.InDelta(t, 45.90, Centavos(4590).Float(), 1e-9)
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("mercado.jpg")

	assert.Equal(t, "mercado.jpg", rec.FileName)
	assert.Equal(t, constants.Other, rec.Category)
	assert.Nil(t, rec.CNPJ)
	assert.Nil(t, rec.Company)
	assert.False(t, rec.ProcessedAt.IsZero())
}

func TestErrorRecord(t *testing.T) {
	rec := ErrorRecord("ruim.jpg", errors.New("ocr exploded"))

	assert.Equal(t, "ruim.jpg", rec.FileName)
	assert.Equal(t, "ocr exploded", rec.Err)
	assert.NotNil(t, rec.Company)
	assert.Equal(t, "processing error", rec.Company.LegalName)
	assert.Equal(t, constants.Other, rec.Category)
}
