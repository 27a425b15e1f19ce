package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/slabkit/internal/logger"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	verbose bool
	jsonOut bool
	lang    string

	printer *message.Printer
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "slabctl",
		Short: "Exercise and inspect slab object pools",
		Long: `slabctl drives the slab object pool: it replays the reference
block-growth scenario, runs allocation churn benchmarks, and builds
handle-linked lists and graphs on top of a pool.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(g.lang)
			if err != nil {
				return fmt.Errorf("invalid --lang %q: %w", g.lang, err)
			}
			g.printer = message.NewPrinter(tag)

			logger.Init(logger.Options{
				Enabled: g.verbose,
				Writer:  cmd.ErrOrStderr(),
				Level:   slog.LevelDebug,
			})
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log pool events to stderr")
	root.PersistentFlags().BoolVar(&g.jsonOut, "json", false, "Output in JSON format")
	root.PersistentFlags().StringVar(&g.lang, "lang", "en", "Language tag used to format numbers")

	root.AddCommand(
		newDemoCmd(g),
		newBenchCmd(g),
		newListCmd(g),
		newGraphCmd(g),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("slabctl: command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printf writes localized output.
func (g *globals) printf(w io.Writer, format string, args ...any) {
	g.printer.Fprintf(w, format, args...)
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
