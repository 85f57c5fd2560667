package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCNPJExtractorLabeledFormatted(t *testing.T) {
	e := NewCNPJExtractor(nil)
	lines := []string{
		"SUPERMERCADO BOM PRECO LTDA",
		"CNPJ: 11.222.333/0001-81",
		"AV BRASIL 1500",
	}

	got, ok := e.Extract(lines)
	require.True(t, ok)
	assert.Equal(t, "11222333000181", got)
}

func TestCNPJExtractorLabeledRaw(t *testing.T) {
	e := NewCNPJExtractor(nil)

	got, ok := e.Extract([]string{"CNPJ 11222333000181"})
	require.True(t, ok)
	assert.Equal(t, "11222333000181", got)
}

func TestCNPJExtractorIsolatedRun(t *testing.T) {
	e := NewCNPJExtractor(nil)

	got, ok := e.Extract([]string{"PADARIA CENTRAL", "12345678000195", "OBRIGADO"})
	require.True(t, ok)
	assert.Equal(t, "12345678000195", got)
}

func TestCNPJExtractorFormattedWithoutLabel(t *testing.T) {
	e := NewCNPJExtractor(nil)

	got, ok := e.Extract([]string{"inscricao 11.222.333/0001-81 estadual"})
	require.True(t, ok)
	assert.Equal(t, "11222333000181", got)
}

func TestCNPJExtractorLabelBeatsEarlierIsolatedRun(t *testing.T) {
	e := NewCNPJExtractor(nil)
	// The isolated run appears first in the text, but the labeled pattern is
	// earlier in the matcher list and wins.
	lines := []string{
		"12345678000195",
		"CNPJ: 11.222.333/0001-81",
	}

	got, ok := e.Extract(lines)
	require.True(t, ok)
	assert.Equal(t, "11222333000181", got)
}

func TestCNPJExtractorRejectsDegenerateCandidates(t *testing.T) {
	e := NewCNPJExtractor(nil)

	_, ok := e.Extract([]string{"CNPJ: 11111111111111"})
	assert.False(t, ok, "repeated digits must be rejected")

	_, ok = e.Extract([]string{"CNPJ: 00000123456789"})
	assert.False(t, ok, "00000 prefix must be rejected")
}

func TestCNPJExtractorFallsThroughToValidCandidate(t *testing.T) {
	e := NewCNPJExtractor(nil)
	lines := []string{
		"CNPJ: 11111111111111",
		"FORNECEDOR",
		"12345678000195",
	}

	got, ok := e.Extract(lines)
	require.True(t, ok)
	assert.Equal(t, "12345678000195", got)
}

func TestCNPJExtractorIsolatedRunNeedsWhitespaceBounds(t *testing.T) {
	e := NewCNPJExtractor(nil)

	// A digit run touching a separator is not isolated.
	_, ok := e.Extract([]string{"NF 12345678000195-1"})
	assert.False(t, ok)

	_, ok = e.Extract([]string{"REF/12345678000195"})
	assert.False(t, ok)
}

func TestCNPJExtractorNothingFound(t *testing.T) {
	e := NewCNPJExtractor(nil)

	_, ok := e.Extract(nil)
	assert.False(t, ok)

	_, ok = e.Extract([]string{"TOTAL R$ 45,90", "OBRIGADO VOLTE SEMPRE"})
	assert.False(t, ok)
}

func TestValidCNPJ(t *testing.T) {
	assert.True(t, ValidCNPJ("11222333000181"))
	assert.False(t, ValidCNPJ("1122233300018"))   // 13 digits
	assert.False(t, ValidCNPJ("112223330001811")) // 15 digits
	assert.False(t, ValidCNPJ("22222222222222"))
	assert.False(t, ValidCNPJ("00000678000195"))
}
