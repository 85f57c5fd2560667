// Package registry looks up company data for a CNPJ in the BrasilAPI
// public registry. One best-effort request per lookup: no retry, no cache.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/joseph-ayodele/fiscal-receipts/internal/entity"
)

const (
	DefaultBaseURL = "https://brasilapi.com.br/api/cnpj/v1"
	DefaultTimeout = 10 * time.Second
)

type Config struct {
	BaseURL string        // default DefaultBaseURL
	Timeout time.Duration // per-request bound, default 10s
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type lookupResponse struct {
	RazaoSocial         string `json:"razao_social"`
	CNAEFiscal          int64  `json:"cnae_fiscal"`
	CNAEFiscalDescricao string `json:"cnae_fiscal_descricao"`
}

// Lookup fetches the legal name and main activity for a 14-digit CNPJ.
// Any transport error, non-2xx status or off-schema body comes back as an
// error; callers degrade to an absent CompanyInfo and keep the batch going.
func (c *Client) Lookup(ctx context.Context, cnpj string) (*entity.CompanyInfo, error) {
	url := c.cfg.BaseURL + "/" + cnpj
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("registry.lookup.send_error", "cnpj", cnpj, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("registry.lookup.body_close_error", "cnpj", cnpj, "error", err)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)
	c.logger.Debug("registry.lookup.response",
		"cnpj", cnpj,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("cnpj %s: non-2xx status: %d", cnpj, resp.StatusCode)
	}

	if err := validateLookupBody(raw); err != nil {
		return nil, fmt.Errorf("cnpj %s: %w", cnpj, err)
	}

	var body lookupResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("cnpj %s: decode response: %w", cnpj, err)
	}

	info := &entity.CompanyInfo{
		LegalName: body.RazaoSocial,
		Activity:  body.CNAEFiscalDescricao,
	}
	if info.LegalName == "" {
		info.LegalName = "unavailable"
	}
	if body.CNAEFiscal != 0 {
		info.CNAECode = strconv.FormatInt(body.CNAEFiscal, 10)
	}
	return info, nil
}
