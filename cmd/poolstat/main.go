package main

import (
	"os"

	"github.com/wonny/poolstat/cmd/poolstat/commands"
)

// main is the entry point for the poolstat CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/poolstat [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
