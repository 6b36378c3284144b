// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Keyvault.
//
// Usage:
//
//	go run . [flags]
//	./keyvault [flags]
//
// This launches the Keyvault CLI. See --help for options.
package main

import (
	"os"

	"github.com/toeirei/keyvault/internal/cli"
)

// main is the entrypoint for the Keyvault CLI.
func main() {
	err := cli.Execute()
	os.Exit(cli.ExitCode(err))
}
