package ocr

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	stdout string
	stderr string
	err    error
	name   string
	args   []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.name = name
	s.args = args
	return []byte(s.stdout), []byte(s.stderr), s.err
}

func TestTesseractExtractLines(t *testing.T) {
	stub := &stubRunner{stdout: "SUPERMERCADO BOM PRECO\n\n  TOTAL: R$ 45,90  \n"}
	e := NewTesseractExtractor(Config{Timeout: time.Minute}, nil)
	e.runner = stub

	lines, err := e.ExtractLines(context.Background(), []byte("fake-image"))
	require.NoError(t, err)
	assert.Equal(t, []string{"SUPERMERCADO BOM PRECO", "TOTAL: R$ 45,90"}, lines)

	assert.Equal(t, "tesseract", stub.name)
	require.Len(t, stub.args, 4)
	assert.Equal(t, "stdout", stub.args[1])
	assert.Equal(t, []string{"-l", "por"}, stub.args[2:])
}

func TestTesseractExtractLinesCommandFailure(t *testing.T) {
	stub := &stubRunner{stderr: "Error opening data file", err: errors.New("exit status 1")}
	e := NewTesseractExtractor(Config{Timeout: time.Minute}, nil)
	e.runner = stub

	_, err := e.ExtractLines(context.Background(), []byte("fake-image"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error opening data file")
}

func TestTesseractLogsCallOutcome(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := NewTesseractExtractor(Config{Timeout: time.Minute}, logger)
	e.runner = &stubRunner{stdout: "TOTAL 10,00\n"}
	_, err := e.ExtractLines(context.Background(), []byte("fake-image"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ocr.tesseract.ok")

	buf.Reset()
	e.runner = &stubRunner{err: errors.New("exit status 1")}
	_, err = e.ExtractLines(context.Background(), []byte("fake-image"))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "ocr.tesseract.failed")
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Nil(t, SplitLines("\n  \n\t\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines(" a \nb\n"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...(truncated)", truncate("abcdef", 2))
}
