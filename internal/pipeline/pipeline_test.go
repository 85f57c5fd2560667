package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/fiscal-receipts/constants"
	"github.com/joseph-ayodele/fiscal-receipts/internal/categorize"
	"github.com/joseph-ayodele/fiscal-receipts/internal/entity"
)

// fakeExtractor returns one canned line set per call, in order.
type fakeExtractor struct {
	results [][]string
	errs    []error
	calls   int
}

func (f *fakeExtractor) ExtractLines(_ context.Context, _ []byte) ([]string, error) {
	i := f.calls
	f.calls++
	var lines []string
	var err error
	if i < len(f.results) {
		lines = f.results[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return lines, err
}

type fakeLookup struct {
	info  *entity.CompanyInfo
	err   error
	calls int
	last  string
}

func (f *fakeLookup) Lookup(_ context.Context, cnpj string) (*entity.CompanyInfo, error) {
	f.calls++
	f.last = cnpj
	return f.info, f.err
}

var receiptLines = []string{
	"SUPERMERCADO BOM PRECO LTDA",
	"CNPJ: 11.222.333/0001-81",
	"TOTAL: R$ 45,90",
}

func TestProcessImageHappyPath(t *testing.T) {
	ex := &fakeExtractor{results: [][]string{receiptLines}}
	lookup := &fakeLookup{info: &entity.CompanyInfo{
		LegalName: "SUPERMERCADO BOM PRECO LTDA",
		Activity:  "Comércio varejista de mercadorias - supermercado",
	}}
	p := New(ex, lookup, categorize.New(nil), nil)

	rec := p.ProcessImage(context.Background(), Image{Name: "mercado.jpg"})

	require.NotNil(t, rec.CNPJ)
	assert.Equal(t, "11222333000181", *rec.CNPJ)
	assert.Equal(t, "11222333000181", lookup.last)
	assert.Equal(t, entity.Centavos(4590), rec.Amount)
	assert.Equal(t, constants.Food, rec.Category)
	require.NotNil(t, rec.Company)
	assert.Equal(t, "SUPERMERCADO BOM PRECO LTDA", rec.Company.LegalName)
	assert.Empty(t, rec.Err)
}

func TestProcessImageOCRFailureDegrades(t *testing.T) {
	ex := &fakeExtractor{errs: []error{errors.New("textract: throttled")}}
	lookup := &fakeLookup{}
	p := New(ex, lookup, categorize.New(nil), nil)

	rec := p.ProcessImage(context.Background(), Image{Name: "borrado.jpg"})

	assert.Nil(t, rec.CNPJ)
	assert.Equal(t, entity.Centavos(0), rec.Amount)
	assert.Equal(t, constants.Other, rec.Category)
	assert.Zero(t, lookup.calls, "no identifier, no lookup")
}

func TestProcessImageNoCNPJSkipsLookup(t *testing.T) {
	ex := &fakeExtractor{results: [][]string{{"PADARIA CENTRAL", "TOTAL 12,50"}}}
	lookup := &fakeLookup{}
	p := New(ex, lookup, categorize.New(nil), nil)

	rec := p.ProcessImage(context.Background(), Image{Name: "padaria.jpg"})

	assert.Nil(t, rec.CNPJ)
	assert.Equal(t, entity.Centavos(1250), rec.Amount)
	assert.Equal(t, constants.Other, rec.Category)
	assert.Zero(t, lookup.calls)
}

func TestProcessImageRegistryFailureKeepsRecord(t *testing.T) {
	ex := &fakeExtractor{results: [][]string{receiptLines}}
	lookup := &fakeLookup{err: errors.New("non-2xx status: 404")}
	p := New(ex, lookup, categorize.New(nil), nil)

	rec := p.ProcessImage(context.Background(), Image{Name: "mercado.jpg"})

	require.NotNil(t, rec.CNPJ)
	assert.Equal(t, "11222333000181", *rec.CNPJ)
	assert.Equal(t, entity.Centavos(4590), rec.Amount)
	assert.Nil(t, rec.Company)
	assert.Equal(t, constants.Other, rec.Category)
}

func TestProcessBatchContinuesAfterFailures(t *testing.T) {
	ex := &fakeExtractor{
		results: [][]string{nil, receiptLines},
		errs:    []error{errors.New("textract: bad image"), nil},
	}
	lookup := &fakeLookup{info: &entity.CompanyInfo{LegalName: "X", Activity: "restaurante"}}
	p := New(ex, lookup, categorize.New(nil), nil)

	records := p.ProcessBatch(context.Background(), []Image{
		{Name: "ruim.jpg"},
		{Name: "bom.jpg"},
	})

	require.Len(t, records, 2)
	assert.Equal(t, "ruim.jpg", records[0].FileName)
	assert.Nil(t, records[0].CNPJ)
	assert.Equal(t, "bom.jpg", records[1].FileName)
	require.NotNil(t, records[1].CNPJ)
	assert.Equal(t, constants.Food, records[1].Category)
}

type panicExtractor struct{}

func (panicExtractor) ExtractLines(context.Context, []byte) ([]string, error) {
	panic("boom")
}

func TestProcessImageRecoversFromPanic(t *testing.T) {
	p := New(panicExtractor{}, &fakeLookup{}, categorize.New(nil), nil)

	rec := p.ProcessImage(context.Background(), Image{Name: "panico.jpg"})

	assert.Equal(t, "panico.jpg", rec.FileName)
	assert.Contains(t, rec.Err, "panic")
	require.NotNil(t, rec.Company)
	assert.Equal(t, "processing error", rec.Company.LegalName)
}
