package cmd

import (
	"fmt"
	"io"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the toolkit version and build time.",
		Usage: "domkit version",
		Run: func(out io.Writer, _ []string) error {
			_, err := fmt.Fprintf(out, "domkit version %s (built %s)\n", Version, BuildTime)
			return err
		},
	})
}
