// cnpj-lookup is a debugging tool: look up one CNPJ in the registry and
// print the company info plus the category the batch would assign.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"

	"github.com/joseph-ayodele/fiscal-receipts/internal/categorize"
	"github.com/joseph-ayodele/fiscal-receipts/internal/common"
	"github.com/joseph-ayodele/fiscal-receipts/internal/extract"
	"github.com/joseph-ayodele/fiscal-receipts/internal/logging"
	"github.com/joseph-ayodele/fiscal-receipts/internal/registry"
)

var nonDigit = regexp.MustCompile(`\D`)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cnpj-lookup <cnpj>")
		os.Exit(2)
	}

	logger := logging.Setup(logging.DefaultConfig())

	cnpj := nonDigit.ReplaceAllString(flag.Arg(0), "")
	if !extract.ValidCNPJ(cnpj) {
		fmt.Fprintf(os.Stderr, "invalid CNPJ: %s\n", flag.Arg(0))
		os.Exit(1)
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	client := registry.NewClient(registry.Config{
		BaseURL: cfg.Registry.BaseURL,
		Timeout: cfg.Registry.Timeout,
	}, logger)

	info, err := client.Lookup(context.Background(), cnpj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lookup failed: %v\n", err)
		os.Exit(1)
	}

	category := categorize.New(nil).Categorize(info.Activity)

	fmt.Printf("CNPJ:     %s\n", cnpj)
	fmt.Printf("Company:  %s\n", info.LegalName)
	fmt.Printf("Activity: %s\n", info.Activity)
	if info.CNAECode != "" {
		fmt.Printf("CNAE:     %s\n", info.CNAECode)
	}
	fmt.Printf("Category: %s\n", category)
}
