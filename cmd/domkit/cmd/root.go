// Package cmd implements the domkit CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (render, version).
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/go-drift/domkit/pkg/theme"
)

// Version information set at build time.
var (
	Version   = theme.ToolkitVersion
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(out io.Writer, args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "domkit",
	Short: "domkit - accessible widgets for browser hosts",
	Long: `domkit renders widget trees for a browser host. The CLI builds a data
grid from JSON rows, applies sorting, filtering, selection and scrolling,
and prints the render tree the host would mount.

Use "domkit <command> --help" for more information about a command.`,
	Usage: "domkit <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	err := Run(os.Stdout, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// Run dispatches args to a registered command, writing output to out.
func Run(out io.Writer, args []string) error {
	if len(args) == 0 {
		printHelp(out, rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(out, rootCmd)
		return nil
	case "-v", "--version":
		args[0] = "version"
	}

	cmd, ok := commands[args[0]]
	if !ok {
		printHelp(out, rootCmd)
		return fmt.Errorf("unknown command: %s", args[0])
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" {
			printCommandHelp(out, cmd)
			return nil
		}
	}
	return cmd.Run(out, cmdArgs)
}

func printHelp(out io.Writer, cmd *Command) {
	fmt.Fprintln(out, cmd.Long)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s\n", cmd.Usage)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(out, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags:")
	fmt.Fprintln(out, "  -h, --help           Show help for a command")
	fmt.Fprintln(out, "  -v, --version        Show version information")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Environment:")
	fmt.Fprintln(out, "  OTEL_EXPORTER_OTLP_ENDPOINT   Export render traces to an OTLP/HTTP collector")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Examples:")
	fmt.Fprintln(out, "  domkit render --rows people.json --sort name")
	fmt.Fprintln(out, "  domkit render --rows people.json --filter name=ann --format json")
}

func printCommandHelp(out io.Writer, cmd *Command) {
	fmt.Fprintln(out, cmd.Long)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s\n", cmd.Usage)
}
