// Command driftscan is the CLI entry point for the incremental filesystem
// scanner.
package main

import (
	"os"

	"github.com/driftscan/drift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
