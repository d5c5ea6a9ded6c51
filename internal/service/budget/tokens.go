package budget

import (
	"context"

	"github.com/pkoukk/tiktoken-go"

	"github.com/warrenhq/warren/pkg/log"
)

// Counter reports how many model tokens a piece of text consumes.
type Counter interface {
	Count(text string) int
}

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

func (c *tiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}

// EstimatedCounter approximates token counts from character length. English
// prose averages about four characters per token.
type EstimatedCounter struct {
	CharsPerToken int
}

func (c EstimatedCounter) Count(text string) int {
	per := c.CharsPerToken
	if per <= 0 {
		per = 4
	}
	return len(text) / per
}

// NewCounter returns a cl100k_base tiktoken counter, falling back to
// character estimation when the encoding cannot be loaded.
func NewCounter(ctx context.Context) Counter {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("tiktoken unavailable, using estimated token counting")
		return EstimatedCounter{CharsPerToken: 4}
	}
	return &tiktokenCounter{enc: enc}
}
