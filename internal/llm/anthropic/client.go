package anthropic

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hansol-kim/building-ledger/constants"
	"github.com/hansol-kim/building-ledger/internal/entity"
	"github.com/hansol-kim/building-ledger/internal/llm"
)

const anthropicVersion = "2023-06-01"

// ExtractListing implements llm.DocumentExtractor by sending the brochure PDF
// as a base64 document block to the Messages API and parsing the JSON reply.
func (c *Client) ExtractListing(ctx context.Context, doc []byte) (entity.ExtractedListing, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"max_tokens", c.cfg.MaxTokens,
		"doc_bytes", len(doc),
	)

	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return entity.ExtractedListing{}, nil, fmt.Errorf("anthropic api key is not configured (set ANTHROPIC_API_KEY)")
	}

	body := map[string]any{
		"model":      c.cfg.Model,
		"max_tokens": c.cfg.MaxTokens,
		"system":     llm.BuildSystemPrompt(),
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{
						"type": "document",
						"source": map[string]any{
							"type":       "base64",
							"media_type": constants.PDFMimeType,
							"data":       base64.StdEncoding.EncodeToString(doc),
						},
					},
					{"type": "text", "text": llm.BuildUserPrompt()},
				},
			},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/messages"
	raw, httpErr := c.post(ctx, endpoint, body)
	if httpErr != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedListing{}, nil, httpErr
	}

	var msg struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedListing{}, raw, fmt.Errorf("decode anthropic response: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if strings.TrimSpace(text) == "" {
		c.log.Error("llm.extract.no_text_block",
			"req_id", rid, "raw", llm.Excerpt(string(raw), 500),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedListing{}, raw, fmt.Errorf("no text content in anthropic response")
	}

	rawContent := []byte(llm.IsolateJSON(text))
	listing, err := llm.ParseListingResponse([]byte(text))
	if err != nil {
		c.log.Error("llm.extract.parse_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedListing{}, rawContent, err
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"building", listing.Building.Name,
		"address", listing.Building.Address,
		"sale_price", listing.PriceInfo.SalePrice,
		"leases", len(listing.Leases),
		"stop_reason", msg.StopReason,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return listing, rawContent, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if cErr := body.Close(); cErr != nil {
			c.log.Warn("anthropic response body close error", "error", cErr)
		}
	}(resp.Body)

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("read anthropic response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("anthropic status %d: %s", resp.StatusCode, buf.String())
	}
	return buf.Bytes(), nil
}
