// Package app contains the core application logic for the tally CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/chriscorrea/tally/internal/counter"
	"github.com/chriscorrea/tally/internal/extract"
	"github.com/chriscorrea/tally/internal/fetch"
	"github.com/chriscorrea/tally/internal/report"
	"github.com/chriscorrea/tally/internal/spinner"
)

// Config holds all configuration options for the tally application.
type Config struct {
	Sources   []string          // file paths, URLs, or "-" for stdin
	Selection counter.Selection // metrics to compute
	Selector  string            // CSS selector applied to HTML sources
	ForceHTML bool              // treat local and stdin sources as HTML
	Quiet     bool              // suppress warnings and progress output
	Debug     bool
}

// Run executes the main tally logic with the given configuration.
//
// Each source is fetched, optionally reduced from HTML to text, counted, and
// rendered as one output line. When more than one source is counted, a totals
// row follows. Failing sources are reported on stderr and skipped; if any
// source failed, the accumulated output is still returned together with a
// non-nil error so the caller can exit non-zero.
//
// ctx allows for cancellation of fetch operations.
func Run(ctx context.Context, cfg Config) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}

	var out strings.Builder
	var results []counter.Result
	failed := 0

	for _, source := range cfg.Sources {
		res, err := processSource(ctx, source, cfg)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Warning: failed to process source %q: %v\n", source, err)
			}
			failed++
			continue
		}

		// the source spelling doubles as the output label; stdin's "-"
		// sentinel comes in from the CLI layer already
		out.WriteString(report.Line(res, source))
		out.WriteByte('\n')
		results = append(results, res)
	}

	if len(results) > 1 {
		out.WriteString(report.Line(report.Total(results), report.TotalLabel))
		out.WriteByte('\n')
	}

	if failed > 0 {
		return out.String(), fmt.Errorf("%d of %d sources failed", failed, len(cfg.Sources))
	}
	return out.String(), nil
}

// processSource acquires one source, reads it fully into memory, and counts
// it. Counting never runs on partial data: any fetch or read error aborts the
// source before the counter sees it.
// TODO: implement streaming counting; the current approach loads full content into memory
func processSource(ctx context.Context, source string, cfg Config) (counter.Result, error) {
	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return counter.Result{}, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer reader.Close()

	buf, err := readSource(ctx, reader, source, cfg)
	if err != nil {
		return counter.Result{}, err
	}

	res, err := counter.Count(buf, cfg.Selection)
	if err != nil {
		return counter.Result{}, fmt.Errorf("failed to count %q: %w", source, err)
	}
	return res, nil
}

// readSource slurps a source into a byte buffer, passing HTML sources
// through the extractor first.
func readSource(ctx context.Context, reader io.Reader, source string, cfg Config) ([]byte, error) {
	remote := fetch.IsRemote(source)

	if !remote && !cfg.ForceHTML && cfg.Selector == "" {
		buf, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", source, err)
		}
		return buf, nil
	}

	// remote fetches can be slow; show progress unless quiet
	if remote && !cfg.Quiet {
		sp := spinner.New(ctx, os.Stderr, fmt.Sprintf("Fetching %s...", source))
		sp.Start()
		defer sp.Stop()
	}

	// parse source URL so readability can resolve relative links
	var baseURL *url.URL
	if remote {
		baseURL, _ = url.Parse(source) // ignore parse errors, will use nil
	}

	text, err := extract.ToText(reader, cfg.Selector, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}
	return []byte(text), nil
}
