package main

import (
	"fmt"
	"os"
	"time"

	"dadmind/internal/adapter/document"
	"dadmind/internal/cli"
	"dadmind/internal/domain"
)

func main() {
	app := &cli.App{
		Engine: domain.DefaultEngine(),
		NewSource: func(timeout time.Duration) domain.DocumentSource {
			return document.NewFetcher(timeout)
		},
		Decoder: document.NewPDFDecoder(),
	}
	if err := cli.NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
