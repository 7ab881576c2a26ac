package extract

import (
	"context"
	"time"

	"github.com/hansol-kim/building-ledger/constants"
)

// TextExtractor is stage 1: document bytes -> embedded text.
type TextExtractor interface {
	Extract(ctx context.Context, doc []byte) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    int
	Method   constants.ParseMethod
	Duration time.Duration
	Warnings []string
}
