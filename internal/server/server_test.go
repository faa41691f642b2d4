package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karimaz/switchcalc/internal/compare"
	"github.com/karimaz/switchcalc/internal/domain"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(nil, compare.NewDefaultEngine(nil), DefaultMaxBodyBytes)
}

func validRequestBody(t *testing.T) []byte {
	t.Helper()
	req := domain.ComparisonRequest{
		CurrentLoan: domain.LoanTerms{
			Principal:    decimal.NewFromInt(1000000),
			AnnualRate:   decimal.NewFromFloat(0.045),
			TenureMonths: 240,
		},
		NewLoan: domain.LoanTerms{
			Principal:    decimal.NewFromInt(1000000),
			AnnualRate:   decimal.NewFromFloat(0.035),
			TenureMonths: 240,
		},
		HorizonMonths: 12,
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return body
}

func TestHandleCompareSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewReader(validRequestBody(t)))

	testHandler(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result domain.ComparisonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Scenarios, 3)
	assert.Equal(t, 12, result.HorizonMonths)
	assert.NotEmpty(t, result.Summary.Recommendation)
	assert.Len(t, result.Waterfall.Items, len(domain.WaterfallOrder))
}

func TestHandleCompareMalformedJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader("{not json"))

	testHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCompareValidationError(t *testing.T) {
	body := []byte(`{
		"current_loan": {"principal_aed": -5, "annual_rate": 0.04, "tenure_months": 120},
		"new_loan": {"principal_aed": 500000, "annual_rate": 0.04, "tenure_months": 120}
	}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewReader(body))

	testHandler(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "current_loan.principal_aed", resp.Field)
}

func TestHandleCompareMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/compare", nil)

	testHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleCompareBodyTooLarge(t *testing.T) {
	handler := NewHandler(nil, compare.NewDefaultEngine(nil), 64)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewReader(validRequestBody(t)))

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	testHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
