package common

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds all application configuration, loaded from environment
// variables.
type Config struct {
	OCR      OCRConfig
	Registry RegistryConfig
	Storage  StorageConfig
}

// OCRConfig selects and tunes the text-extraction backend.
type OCRConfig struct {
	// Backend is "textract" or "tesseract".
	// Environment variable: OCR_BACKEND
	Backend string `koanf:"OCR_BACKEND"`

	// Region is the AWS region for Textract.
	// Environment variable: AWS_REGION
	Region string `koanf:"AWS_REGION"`

	// Timeout bounds a single OCR call.
	// Environment variable: OCR_TIMEOUT
	Timeout time.Duration `koanf:"OCR_TIMEOUT"`

	// Tesseract is the binary name or path for the local backend.
	// Environment variable: TESSERACT_BIN
	Tesseract string `koanf:"TESSERACT_BIN"`

	// TesseractLang is the OCR language, default "por".
	// Environment variable: TESSERACT_LANG
	TesseractLang string `koanf:"TESSERACT_LANG"`
}

// RegistryConfig tunes the CNPJ registry lookup.
type RegistryConfig struct {
	// BaseURL overrides the BrasilAPI endpoint (tests point it at a fixture).
	// Environment variable: REGISTRY_BASE_URL
	BaseURL string `koanf:"REGISTRY_BASE_URL"`

	// Timeout bounds a single lookup request.
	// Environment variable: REGISTRY_TIMEOUT
	Timeout time.Duration `koanf:"REGISTRY_TIMEOUT"`
}

// StorageConfig selects the results database.
type StorageConfig struct {
	// DSN is a postgres:// connection string; empty selects local SQLite.
	// Environment variable: DB_URL
	DSN string `koanf:"DB_URL"`

	// SQLitePath is the SQLite file path, default "fiscal-receipts.db".
	// Environment variable: SQLITE_PATH
	SQLitePath string `koanf:"SQLITE_PATH"`
}

// LoadConfig reads configuration from the environment and applies defaults.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.OCR.Backend == "" {
		cfg.OCR.Backend = "textract"
	}
	if cfg.OCR.Region == "" {
		cfg.OCR.Region = "us-east-1"
	}
	if cfg.OCR.Timeout <= 0 {
		cfg.OCR.Timeout = 30 * time.Second
	}
	if cfg.Registry.Timeout <= 0 {
		cfg.Registry.Timeout = 10 * time.Second
	}
	return &cfg, nil
}

// Validate rejects configurations that would fail mid-batch.
func (c *Config) Validate() error {
	switch c.OCR.Backend {
	case "textract", "tesseract":
	default:
		return NewAppError("CONFIG_ERROR",
			fmt.Sprintf("OCR_BACKEND must be textract or tesseract, got %q", c.OCR.Backend),
			ErrInvalidInput)
	}
	return nil
}
