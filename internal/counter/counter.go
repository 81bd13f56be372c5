// Package counter provides the counting core for the tally CLI tool.
//
// This package computes byte, line, and word counts in a single fused pass
// over raw bytes, and character (codepoint) counts in a separate UTF-8-aware
// pass. Extended units (sentences, tokens, unique words) each use their own
// traversal over the decoded text, so every metric's semantics stays
// independently testable.
//
// Usage Example:
//
//	result, err := counter.Count(buf, counter.Selection{Lines: true, Words: true})
//	// result.Lines and result.Words are populated; everything else is absent
//
// Count is pure: it performs no I/O, never mutates the buffer, and is safe to
// call concurrently on independent inputs.
package counter

import (
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// Selection indicates which metrics Count should compute. The flags are
// independent; all of them may be set, or none. An empty Selection is valid
// and yields an empty Result; applying a default selection is the caller's
// decision, not Counter's.
type Selection struct {
	Bytes       bool
	Lines       bool
	Words       bool
	Chars       bool
	Sentences   bool
	Tokens      bool
	UniqueWords bool
}

// Any reports whether at least one metric is selected.
func (s Selection) Any() bool {
	return s.Bytes || s.Lines || s.Words || s.Chars || s.Sentences || s.Tokens || s.UniqueWords
}

// Value is a computed metric value. The zero value means "not computed";
// a computed zero is Value{N: 0, Valid: true}. Keeping the tag explicit
// avoids sentinel-value bugs where "absent" and "zero" blur together.
type Value struct {
	N     int64
	Valid bool
}

// Result holds one optional Value per metric. A metric's Value is Valid if
// and only if the metric was requested in the Selection passed to Count.
type Result struct {
	Bytes       Value
	Lines       Value
	Words       Value
	Chars       Value
	Sentences   Value
	Tokens      Value
	UniqueWords Value
}

// Count computes the selected metrics for buf and returns a sparse Result.
//
// Bytes, lines, words, and characters never fail: the byte-level metrics are
// defined for arbitrary binary content, and character counting decodes with
// replacement (each byte that does not begin a valid UTF-8 sequence counts as
// one replacement codepoint). The returned error can only be non-nil for
// extended metrics whose backing model fails to initialize.
func Count(buf []byte, sel Selection) (Result, error) {
	var res Result

	if sel.Bytes {
		// no scan needed; length is the byte count
		res.Bytes = Value{N: int64(len(buf)), Valid: true}
	}

	if sel.Lines || sel.Words {
		lines, words := scanBytes(buf)
		if sel.Lines {
			res.Lines = Value{N: lines, Valid: true}
		}
		if sel.Words {
			res.Words = Value{N: words, Valid: true}
		}
	}

	if sel.Chars {
		// separate pass; codepoint counting works at a different granularity
		// than the byte scan and is kept independent of it
		res.Chars = Value{N: int64(utf8.RuneCount(buf)), Valid: true}
	}

	if sel.Sentences || sel.Tokens || sel.UniqueWords {
		text := string(buf)

		if sel.Sentences {
			n, err := sentenceCount(text)
			if err != nil {
				return Result{}, fmt.Errorf("failed to count sentences: %w", err)
			}
			res.Sentences = Value{N: n, Valid: true}
		}

		if sel.Tokens {
			n, err := tokenCount(text)
			if err != nil {
				return Result{}, fmt.Errorf("failed to count tokens: %w", err)
			}
			res.Tokens = Value{N: n, Valid: true}
		}

		if sel.UniqueWords {
			res.UniqueWords = Value{N: uniqueWordCount(text), Valid: true}
		}
	}

	slog.Debug("counts calculated", "bufLength", len(buf),
		"lines", res.Lines.N, "words", res.Words.N, "chars", res.Chars.N)

	return res, nil
}

// isCountSpace reports whether b separates words. The class is fixed to the
// four ASCII separators (space, tab, LF, CR) regardless of locale.
func isCountSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// scanBytes is the fused single pass computing line and word counts.
//
// Lines are the number of LF bytes; a bare CR never terminates a line, and
// an unterminated final line is not counted. Words use a two-state machine:
// entering a word on a non-separator byte emits nothing, leaving one on a
// separator emits a count, and the end-of-input flush emits one count if the
// scan ends inside a word.
func scanBytes(buf []byte) (lines, words int64) {
	inWord := false
	for _, b := range buf {
		if b == '\n' {
			lines++
		}
		if isCountSpace(b) {
			if inWord {
				words++
				inWord = false
			}
		} else {
			inWord = true
		}
	}
	if inWord {
		words++
	}
	return lines, words
}
