package main

import (
	"os"

	"github.com/vfg2006/sales-dashboard-api/cmd/salesctl/commands"
)

// main executa o CLI: go run ./cmd/salesctl [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
