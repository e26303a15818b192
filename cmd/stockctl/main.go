package main

import (
	"os"

	"github.com/jhoicas/Despacho-api/cmd/stockctl/commands"
)

// main punto de entrada: go run ./cmd/stockctl [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
