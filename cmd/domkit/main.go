// Command domkit renders grids from JSON row data and prints the resulting
// render tree.
package main

import (
	"os"

	"github.com/go-drift/domkit/cmd/domkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
