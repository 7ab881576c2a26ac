package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hansol-kim/building-ledger/constants"
	"github.com/hansol-kim/building-ledger/internal/entity"
	"github.com/hansol-kim/building-ledger/internal/extract"
	"github.com/hansol-kim/building-ledger/internal/fields"
	"github.com/hansol-kim/building-ledger/internal/llm"
)

// minViableTextLen is the trimmed-text threshold below which an embedded
// text layer is considered unusable (scanned or image-only brochures) and
// the document goes to the model instead.
const minViableTextLen = 100

// Result is the outcome of parsing one brochure.
type Result struct {
	Listing     entity.ExtractedListing
	Method      constants.ParseMethod
	Text        string // extracted text, empty when extraction failed
	Pages       int
	RawResponse []byte // model JSON when Method is llm-fallback
	Duration    time.Duration
}

// Processor runs a brochure through text extraction and then either the
// deterministic field extractor or the model fallback.
type Processor struct {
	log      *slog.Logger
	text     extract.TextExtractor
	fallback llm.DocumentExtractor
}

func NewProcessor(logger *slog.Logger, text extract.TextExtractor, fallback llm.DocumentExtractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{log: logger, text: text, fallback: fallback}
}

// Process parses doc. Extraction failures and thin text layers route to the
// model fallback; a fallback failure is terminal.
func (p *Processor) Process(ctx context.Context, doc []byte) (Result, error) {
	rid := uuid.New().String()
	start := time.Now()
	p.log.Info("pipeline.parse.start", "req_id", rid, "doc_bytes", len(doc))

	var (
		text  string
		pages int
	)
	textRes, err := p.text.Extract(ctx, doc)
	if err != nil {
		p.log.Warn("pipeline.text_extract.failed",
			"req_id", rid, "error", err, "hint", "routing to model fallback")
	} else {
		text = textRes.Text
		pages = textRes.Pages
	}

	if err == nil && len(strings.TrimSpace(text)) >= minViableTextLen {
		listing := fields.ExtractListing(text)
		p.log.Info("pipeline.parse.ok",
			"req_id", rid,
			"method", constants.MethodPDFText,
			"pages", pages,
			"text_len", len(text),
			"leases", len(listing.Leases),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{
			Listing:  listing,
			Method:   constants.MethodPDFText,
			Text:     text,
			Pages:    pages,
			Duration: time.Since(start),
		}, nil
	}

	if err == nil {
		p.log.Info("pipeline.text_extract.thin",
			"req_id", rid,
			"trimmed_len", len(strings.TrimSpace(text)),
			"threshold", minViableTextLen,
		)
	}

	listing, raw, fbErr := p.fallback.ExtractListing(ctx, doc)
	if fbErr != nil {
		p.log.Error("pipeline.fallback.failed",
			"req_id", rid, "error", fbErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{}, fmt.Errorf("model fallback: %w", fbErr)
	}

	p.log.Info("pipeline.parse.ok",
		"req_id", rid,
		"method", constants.MethodLLMFallback,
		"pages", pages,
		"leases", len(listing.Leases),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{
		Listing:     listing,
		Method:      constants.MethodLLMFallback,
		Text:        text,
		Pages:       pages,
		RawResponse: raw,
		Duration:    time.Since(start),
	}, nil
}
