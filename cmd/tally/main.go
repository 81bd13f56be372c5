package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chriscorrea/tally/internal/app"
	"github.com/chriscorrea/tally/internal/counter"
	"github.com/chriscorrea/tally/internal/report"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	// get flag values
	bytesFlag, _ := cmd.Flags().GetBool("bytes")
	linesFlag, _ := cmd.Flags().GetBool("lines")
	wordsFlag, _ := cmd.Flags().GetBool("words")
	charsFlag, _ := cmd.Flags().GetBool("chars")
	sentencesFlag, _ := cmd.Flags().GetBool("sentences")
	tokensFlag, _ := cmd.Flags().GetBool("tokens")
	uniqueFlag, _ := cmd.Flags().GetBool("unique")
	selector, _ := cmd.Flags().GetString("selector")
	htmlFlag, _ := cmd.Flags().GetBool("html")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	selection := counter.Selection{
		Bytes:       bytesFlag,
		Lines:       linesFlag,
		Words:       wordsFlag,
		Chars:       charsFlag,
		Sentences:   sentencesFlag,
		Tokens:      tokensFlag,
		UniqueWords: uniqueFlag,
	}

	// any explicit metric flag, including --chars alone, suppresses the
	// fallback; only a bare invocation gets the classic wc default
	if !selection.Any() {
		selection.Bytes = true
		selection.Lines = true
		selection.Words = true
	}

	// use positional arguments as sources; none means stdin
	sources := args
	if len(sources) == 0 {
		sources = []string{report.StdinLabel}
	}

	return app.Config{
		Sources:   sources,
		Selection: selection,
		Selector:  selector,
		ForceHTML: htmlFlag,
		Quiet:     quiet,
		Debug:     debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "tally [sources...]",
	Short: "A CLI tool for counting text",
	Long: `Tally reports byte, line, word, and character counts for text inputs,
plus sentence, token, and vocabulary counts on request. Sources may include
local files, URLs, or standard input.

Examples:
  tally notes.txt
  tally -l -w chapter1.txt chapter2.txt
  tally --tokens https://example.com
  cat notes.txt | tally -m`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// a bare invocation on an interactive terminal would block waiting
		// for stdin; show help instead
		if len(args) == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
			return cmd.Help()
		}

		// build config from flags and arguments
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		// configure logging pending debug flag
		setupLogger(config.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, config)

		// per-source lines are still emitted when some sources failed
		fmt.Print(result)

		return err
	},
}

// addFlags registers the tally flag set on a command
func addFlags(cmd *cobra.Command) {
	// metric flags; these combine freely
	cmd.Flags().BoolP("bytes", "c", false, "Count bytes")
	cmd.Flags().BoolP("lines", "l", false, "Count newlines")
	cmd.Flags().BoolP("words", "w", false, "Count whitespace-delimited words")
	cmd.Flags().BoolP("chars", "m", false, "Count Unicode characters (codepoints)")
	cmd.Flags().Bool("sentences", false, "Count sentences")
	cmd.Flags().Bool("tokens", false, "Count cl100k_base tokens")
	cmd.Flags().Bool("unique", false, "Count unique stemmed words")

	// HTML handling
	cmd.Flags().StringP("selector", "s", "", "CSS selector applied to HTML sources before counting")
	cmd.Flags().Bool("html", false, "Treat local and stdin sources as HTML")

	// other flags
	cmd.Flags().BoolP("quiet", "q", false, "Suppress warnings and progress output")
	cmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = cmd.Flags().MarkHidden("debug")
}

func init() {
	addFlags(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
