// internal/session/tokens.go
package session

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/user/codewatch/internal/types"
)

// TokenEstimator approximates context-window occupancy from rendered message
// text, for sessions whose finish events carry no usage block. Real usage
// data from the process always takes precedence.
type TokenEstimator struct {
	tokenizer *tiktoken.Tiktoken
}

// NewTokenEstimator creates an estimator for the given model name.
func NewTokenEstimator(model string) (*TokenEstimator, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		// Fallback to cl100k_base for unknown models
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("get tokenizer: %w", err)
		}
	}
	return &TokenEstimator{tokenizer: enc}, nil
}

// Estimate returns the approximate token count of the conversation so far.
func (e *TokenEstimator) Estimate(messages []types.Message) int {
	total := 0
	for _, m := range messages {
		total += len(e.tokenizer.Encode(m.Content, nil, nil))
	}
	return total
}
