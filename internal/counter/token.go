package counter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// tokens are counted with tiktoken's cl100k_base encoding, which is
// compatible with OpenAI's GPT models. Building the encoding is expensive,
// so it is initialized once and shared; tiktoken's Encode is safe for
// concurrent use on a shared encoding.
var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
	encodingErr  error
)

// tokenCount returns the number of cl100k_base tokens in the given text.
func tokenCount(text string) (int64, error) {
	if text == "" {
		return 0, nil
	}

	encodingOnce.Do(func() {
		slog.Debug("Initializing cl100k_base encoding")
		encoding, encodingErr = tiktoken.GetEncoding("cl100k_base")
	})
	if encodingErr != nil {
		return 0, fmt.Errorf("failed to initialize cl100k_base encoding: %w", encodingErr)
	}

	// encode text to tokens (nil params mean no special tokens allowed/disallowed)
	tokens := encoding.Encode(text, nil, nil)

	slog.Debug("Token count calculated", "textLength", len(text), "tokenCount", len(tokens))
	return int64(len(tokens)), nil
}
