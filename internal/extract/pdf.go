package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/hansol-kim/building-ledger/constants"
)

// PDFExtractor pulls the embedded text layer out of a PDF, page by page.
// Discrete text runs within a page are joined with spaces and pages are
// separated by newlines, so downstream patterns see label/value tokens in
// reading order. Image-only PDFs come back (near-)empty rather than as an
// error; the pipeline's viability gate handles those.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

func (e *PDFExtractor) Extract(ctx context.Context, doc []byte) (res TextExtractionResult, err error) {
	start := time.Now()

	// The pdf package panics on some malformed cross-reference tables;
	// surface those as ordinary decode errors so the caller can fall back.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("extract.pdf.panic", "recovered", r)
			res = TextExtractionResult{Method: constants.MethodPDFText, Duration: time.Since(start)}
			err = fmt.Errorf("decode pdf: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return TextExtractionResult{}, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return TextExtractionResult{Method: constants.MethodPDFText, Duration: time.Since(start)}, fmt.Errorf("decode pdf: %w", err)
	}

	var sb strings.Builder
	var warnings []string
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			warnings = append(warnings, fmt.Sprintf("page %d: empty page object", i))
			sb.WriteString("\n")
			continue
		}
		for _, run := range page.Content().Text {
			if run.S == "" {
				continue
			}
			sb.WriteString(run.S)
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	res = TextExtractionResult{
		Text:     sb.String(),
		Pages:    pages,
		Method:   constants.MethodPDFText,
		Duration: time.Since(start),
		Warnings: warnings,
	}
	e.logger.Debug("extract.pdf.ok", "pages", pages, "text_len", len(res.Text), "elapsed_ms", res.Duration.Milliseconds())
	return res, nil
}
