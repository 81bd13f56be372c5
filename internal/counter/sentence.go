package counter

import (
	"log/slog"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// sentenceCount returns the number of sentences in the given text using
// prose's segmenter. Tokenization, tagging, and entity extraction are
// disabled; only the sentence boundaries are needed.
func sentenceCount(text string) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return 0, err
	}

	sentences := doc.Sentences()

	slog.Debug("Sentence count calculated", "textLength", len(text), "sentenceCount", len(sentences))
	return int64(len(sentences)), nil
}
