package counter

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// uniqueWordCount returns the vocabulary size of the given text: the number
// of distinct words after whitespace splitting, case folding, and English
// Snowball stemming. Stemming folds inflected forms ("count", "counting",
// "counts") into a single vocabulary entry.
func uniqueWordCount(text string) int64 {
	seen := make(map[string]struct{})

	for _, word := range strings.Fields(text) {
		// trim surrounding punctuation so "word," and "word" collapse
		word = strings.TrimFunc(strings.ToLower(word), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if word == "" {
			continue
		}

		stemmed, err := snowball.Stem(word, "english", true)
		if err != nil {
			// if stemming fails, use the original token
			stemmed = word
		}
		seen[stemmed] = struct{}{}
	}

	slog.Debug("Unique word count calculated", "textLength", len(text), "uniqueWords", len(seen))
	return int64(len(seen))
}
