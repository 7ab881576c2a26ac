package llm

import (
	"context"

	"github.com/hansol-kim/building-ledger/internal/entity"
)

// DocumentExtractor is the fallback path: raw document bytes -> a full
// listing, including investment ratings the deterministic battery never
// produces. Implementations return the raw model output alongside the
// parsed listing for diagnostics.
type DocumentExtractor interface {
	ExtractListing(ctx context.Context, doc []byte) (entity.ExtractedListing, []byte, error)
}
