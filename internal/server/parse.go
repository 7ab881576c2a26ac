package server

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/hansol-kim/building-ledger/constants"
	"github.com/hansol-kim/building-ledger/internal/entity"
)

// parseResponse wraps the extraction outcome for the client.
type parseResponse struct {
	Listing     entity.ExtractedListing `json:"listing"`
	ParseMethod constants.ParseMethod   `json:"parseMethod"`
	Pages       int                     `json:"pages,omitempty"`
}

// ParseBrochure accepts a multipart PDF upload under "file" and returns the
// extracted listing. The result is not persisted; clients review it and
// submit a building afterwards.
func (c *Controller) ParseBrochure(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return c.HandleError(ctx, err, "multipart field \"file\" is required", http.StatusBadRequest)
	}
	if fileHeader.Size > constants.MaxUploadBytes {
		return c.HandleError(ctx,
			fmt.Errorf("upload is %d bytes, cap is %d", fileHeader.Size, constants.MaxUploadBytes),
			"file exceeds the 50MB upload limit", http.StatusRequestEntityTooLarge)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != constants.PDFMimeType && !constants.IsAllowedExt(filepath.Ext(fileHeader.Filename)) {
		return c.HandleError(ctx,
			fmt.Errorf("got content type %q, filename %q", contentType, fileHeader.Filename),
			"only PDF brochures are accepted", http.StatusBadRequest)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.HandleError(ctx, err, "failed to read upload", http.StatusInternalServerError)
	}
	defer func() { _ = src.Close() }()

	doc, err := io.ReadAll(io.LimitReader(src, constants.MaxUploadBytes+1))
	if err != nil {
		return c.HandleError(ctx, err, "failed to read upload", http.StatusInternalServerError)
	}
	if len(doc) > constants.MaxUploadBytes {
		return c.HandleError(ctx, fmt.Errorf("upload exceeds declared size"),
			"file exceeds the 50MB upload limit", http.StatusRequestEntityTooLarge)
	}

	res, err := c.Processor.Process(ctx.Request().Context(), doc)
	if err != nil {
		return c.HandleError(ctx, err, "failed to parse brochure", http.StatusInternalServerError)
	}
	return respond(ctx, http.StatusOK, parseResponse{
		Listing:     res.Listing,
		ParseMethod: res.Method,
		Pages:       res.Pages,
	})
}
