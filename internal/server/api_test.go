package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hansol-kim/building-ledger/constants"
	"github.com/hansol-kim/building-ledger/internal/entity"
	"github.com/hansol-kim/building-ledger/internal/export"
	"github.com/hansol-kim/building-ledger/internal/extract"
	"github.com/hansol-kim/building-ledger/internal/pipeline"
	"github.com/hansol-kim/building-ledger/internal/repository"
)

type fakeTextExtractor struct {
	text string
	err  error
}

func (f *fakeTextExtractor) Extract(_ context.Context, _ []byte) (extract.TextExtractionResult, error) {
	if f.err != nil {
		return extract.TextExtractionResult{}, f.err
	}
	return extract.TextExtractionResult{Text: f.text, Pages: 1, Method: constants.MethodPDFText}, nil
}

type fakeFallback struct{}

func (f *fakeFallback) ExtractListing(_ context.Context, _ []byte) (entity.ExtractedListing, []byte, error) {
	l := entity.ExtractedListing{}
	l.Building.Name = "모델추출빌딩"
	return l, []byte(`{}`), nil
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T, text string) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.Migrate(db))

	repo := repository.NewBuildingRepository(db, nil)
	proc := pipeline.NewProcessor(nil, &fakeTextExtractor{text: text}, &fakeFallback{})

	e := echo.New()
	New(e, repo, proc, export.NewService(repo, nil), nil)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env testEnvelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func createPayload() map[string]any {
	return map[string]any{
		"name":    "암사동 바이스트릿",
		"address": "서울시 강동구 암사동 510-22",
		"priceInfo": map[string]any{
			"salePrice":   5_200_000_000,
			"monthlyRent": 15_000_000,
		},
		"leases": []map[string]any{
			{"floor": "1층", "tenant": "편의점", "deposit": 30_000_000, "monthlyRent": 2_000_000},
		},
		"analysisScore": map[string]any{"accessibilityScore": 9},
	}
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(t, "")
	rec, env := doJSON(t, e, http.MethodGet, "/api/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestBuildingCRUD(t *testing.T) {
	e := newTestServer(t, "")

	rec, env := doJSON(t, e, http.MethodPost, "/api/buildings", createPayload())
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env.Success)

	var created entity.Building
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotZero(t, created.ID)
	require.NotNil(t, created.AnalysisScore)
	assert.InDelta(t, 5.2, created.AnalysisScore.TotalScore, 0.001)

	t.Run("list", func(t *testing.T) {
		rec, env := doJSON(t, e, http.MethodGet, "/api/buildings", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		var list []entity.Building
		require.NoError(t, json.Unmarshal(env.Data, &list))
		require.Len(t, list, 1)
		assert.Equal(t, "암사동 바이스트릿", list[0].Name)
		require.Len(t, list[0].Leases, 1)
	})

	t.Run("get", func(t *testing.T) {
		rec, env := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/buildings/%d", created.ID), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		var b entity.Building
		require.NoError(t, json.Unmarshal(env.Data, &b))
		require.NotNil(t, b.PriceInfo)
		assert.Equal(t, int64(5_200_000_000), b.PriceInfo.SalePrice)
	})

	t.Run("update", func(t *testing.T) {
		payload := createPayload()
		payload["name"] = "바이스트릿 (계약완료)"
		rec, env := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/buildings/%d", created.ID), payload)
		assert.Equal(t, http.StatusOK, rec.Code)
		var b entity.Building
		require.NoError(t, json.Unmarshal(env.Data, &b))
		assert.Equal(t, "바이스트릿 (계약완료)", b.Name)
	})

	t.Run("delete then 404", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/buildings/%d", created.ID), nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, env := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/buildings/%d", created.ID), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Error)
	})
}

func TestCreateBuildingValidation(t *testing.T) {
	e := newTestServer(t, "")

	rec, env := doJSON(t, e, http.MethodPost, "/api/buildings", map[string]any{"address": "이름 없음"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "name is required", env.Error)
}

func TestUpsertAnalysisScoreEndpoint(t *testing.T) {
	e := newTestServer(t, "")

	_, env := doJSON(t, e, http.MethodPost, "/api/buildings", map[string]any{"name": "점수 테스트"})
	var created entity.Building
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env := doJSON(t, e, http.MethodPut,
		fmt.Sprintf("/api/buildings/%d/analysis-score", created.ID),
		map[string]any{"accessibilityScore": 9, "unknownScore": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	var score entity.AnalysisScore
	require.NoError(t, json.Unmarshal(env.Data, &score))
	require.NotNil(t, score.AccessibilityScore)
	assert.Equal(t, 9, *score.AccessibilityScore)
	assert.InDelta(t, 5.2, score.TotalScore, 0.001)

	t.Run("missing building", func(t *testing.T) {
		rec, env := doJSON(t, e, http.MethodPut, "/api/buildings/9999/analysis-score",
			map[string]any{"accessibilityScore": 9})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, env.Success)
	})
}

func TestLeaseEndpoints(t *testing.T) {
	e := newTestServer(t, "")

	_, env := doJSON(t, e, http.MethodPost, "/api/buildings", map[string]any{"name": "임대차 테스트"})
	var created entity.Building
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env := doJSON(t, e, http.MethodPost,
		fmt.Sprintf("/api/buildings/%d/leases", created.ID),
		map[string]any{"floor": "3층", "tenant": "학원", "monthlyRent": 1_800_000})
	require.Equal(t, http.StatusCreated, rec.Code)

	var lease entity.Lease
	require.NoError(t, json.Unmarshal(env.Data, &lease))
	require.NotZero(t, lease.ID)

	rec, _ = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/leases/%d", lease.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/leases/%d", lease.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestParseBrochureEndpoint(t *testing.T) {
	brochure := "매매가 52억원 보증금 3억원 " + strings.Repeat("건물 개요 ", 30)
	e := newTestServer(t, brochure)

	body, contentType := multipartUpload(t, "file", "brochure.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/api/parse", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)

	var res parseResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, constants.MethodPDFText, res.ParseMethod)
	assert.Equal(t, int64(5_200_000_000), res.Listing.PriceInfo.SalePrice)
	assert.Equal(t, int64(300_000_000), res.Listing.PriceInfo.Deposit)
}

func TestParseBrochureRejectsNonPDF(t *testing.T) {
	e := newTestServer(t, "")

	body, contentType := multipartUpload(t, "file", "brochure.hwp", []byte("not a pdf"))
	req := httptest.NewRequest(http.MethodPost, "/api/parse", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "PDF")
}

func TestParseBrochureMissingFile(t *testing.T) {
	e := newTestServer(t, "")

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("other", "value"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/parse", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	e := newTestServer(t, "")
	_, _ = doJSON(t, e, http.MethodPost, "/api/buildings", createPayload())

	req := httptest.NewRequest(http.MethodGet, "/api/buildings/export", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "spreadsheetml")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "buildings.xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}
