// Copyright (c) 2026 BioMiner Team
// biominer-app-util - WDL app management utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for biominer-app-util.
//
// Usage:
//
//	go run . [flags]
//	./biominer-app-util [flags]
//
// This launches the app utility CLI. See --help for options.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/yjcyxky/biominer-app-util/internal/cli"
)

// version is set at build time using -ldflags, e.g.:
// go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func main() {
	if os.Getenv("BIOMINER_SHOW_VERSION") == "1" {
		fmt.Fprintf(os.Stderr, "biominer-app-util version: %s\n", version)
	}

	if err := cli.Execute(); err != nil {
		log.Printf("biominer-app-util error: %v", err)
		os.Exit(1)
	}
}
