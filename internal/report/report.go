// Package report renders counting results for the tally CLI tool.
//
// Results are sparse: a metric is rendered only when it was computed, and
// fields always appear in the canonical order (bytes, lines, words,
// characters, sentences, tokens, unique words) regardless of the order the
// metrics were requested in.
package report

import (
	"strconv"
	"strings"

	"github.com/chriscorrea/tally/internal/counter"
)

// StdinLabel is the sentinel source label for standard input. It doubles as
// the source argument spelling, so the CLI's default source flows through to
// the output row unchanged.
const StdinLabel = "-"

// TotalLabel labels the summary row emitted after multiple sources.
const TotalLabel = "total"

// canonicalOrder extracts the metric values of a result in display order.
func canonicalOrder(res counter.Result) []counter.Value {
	return []counter.Value{
		res.Bytes,
		res.Lines,
		res.Words,
		res.Chars,
		res.Sentences,
		res.Tokens,
		res.UniqueWords,
	}
}

// Format renders the present metrics of res as a single tab-separated line.
// Absent metrics are omitted entirely, so the separator count is always one
// less than the number of present metrics. An empty result formats to the
// empty string.
func Format(res counter.Result) string {
	var fields []string
	for _, v := range canonicalOrder(res) {
		if v.Valid {
			fields = append(fields, strconv.FormatInt(v.N, 10))
		}
	}
	return strings.Join(fields, "\t")
}

// Line renders the output row for one source: the formatted counts followed
// by the source label, separated by a tab. If res holds no metrics, the
// label is returned alone.
func Line(res counter.Result, label string) string {
	counts := Format(res)
	if counts == "" {
		return label
	}
	return counts + "\t" + label
}

// Total sums the results of a multi-source run metric by metric. A metric is
// present in the total if it is present in at least one result; metrics that
// were never computed stay absent.
func Total(results []counter.Result) counter.Result {
	var total counter.Result
	for _, res := range results {
		addValue(&total.Bytes, res.Bytes)
		addValue(&total.Lines, res.Lines)
		addValue(&total.Words, res.Words)
		addValue(&total.Chars, res.Chars)
		addValue(&total.Sentences, res.Sentences)
		addValue(&total.Tokens, res.Tokens)
		addValue(&total.UniqueWords, res.UniqueWords)
	}
	return total
}

func addValue(dst *counter.Value, src counter.Value) {
	if !src.Valid {
		return
	}
	dst.N += src.N
	dst.Valid = true
}
