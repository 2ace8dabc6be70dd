package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fxconvert/internal/domain"
	"fxconvert/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct{ mock.Mock }

func (m *MockStore) Latest() (domain.FetchResult, bool) {
	args := m.Called()
	res, _ := args.Get(0).(domain.FetchResult)
	return res, args.Bool(1)
}

type MockConverter struct{ mock.Mock }

func (m *MockConverter) ConvertInput(rawAmount, from, to string, table *domain.RateTable) (domain.ConversionResult, error) {
	args := m.Called(rawAmount, from, to, table)
	res, _ := args.Get(0).(domain.ConversionResult)
	return res, args.Error(1)
}

type errorJSON struct {
	Error string `json:"error"`
}

var fetchedAt = time.Date(2026, 10, 18, 15, 4, 5, 0, time.UTC)

func loadedStore(t *testing.T) *MockStore {
	t.Helper()
	table, err := domain.NewRateTable("USD", map[string]float64{"USD": 1.0, "EUR": 0.9, "JPY": 150.0})
	require.NoError(t, err)
	s := new(MockStore)
	s.On("Latest").Return(domain.FetchResult{Table: table, FetchedAt: fetchedAt}, true)
	return s
}

func emptyStore() *MockStore {
	s := new(MockStore)
	s.On("Latest").Return(domain.FetchResult{}, false)
	return s
}

func requireError(t *testing.T, rr *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	require.Equal(t, code, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Contains(t, ej.Error, msg)
}

// --- Convert ---

func TestHandler_Convert_Success(t *testing.T) {
	h := NewRateHandler(loadedStore(t), rate.NewConverter(nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/convert?amount=10&from=eur&to=usd", nil)
	rr := httptest.NewRecorder()

	h.Convert(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var res ConvertResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "EUR", res.From)
	require.Equal(t, "USD", res.To)
	require.Equal(t, 10.0, res.Amount)
	require.InDelta(t, 11.1111, res.Value, 1e-4)
	require.Equal(t, "10.00 EUR = 11.11 USD", res.Formatted)
	require.True(t, res.UpdatedAt.Equal(fetchedAt))
}

func TestHandler_Convert_Errors(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		wantCode int
		wantMsg  string
	}{
		{name: "invalid amount", query: "amount=abc&from=USD&to=EUR", wantCode: http.StatusBadRequest, wantMsg: domain.ErrInvalidAmount.Error()},
		{name: "negative amount", query: "amount=-5&from=USD&to=EUR", wantCode: http.StatusBadRequest, wantMsg: domain.ErrInvalidAmount.Error()},
		{name: "missing amount", query: "from=USD&to=EUR", wantCode: http.StatusBadRequest, wantMsg: domain.ErrInvalidAmount.Error()},
		{name: "unknown currency", query: "amount=1&from=USD&to=XYZ", wantCode: http.StatusNotFound, wantMsg: "XYZ"},
		{name: "missing source", query: "amount=1&to=EUR", wantCode: http.StatusNotFound, wantMsg: "source currency is required"},
		{name: "result overflows", query: "amount=1e308&from=USD&to=JPY", wantCode: http.StatusBadRequest, wantMsg: "out of range"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewRateHandler(loadedStore(t), rate.NewConverter(nil, nil))
			req := httptest.NewRequest(http.MethodGet, "/convert?"+tc.query, nil)
			rr := httptest.NewRecorder()

			h.Convert(rr, req)

			requireError(t, rr, tc.wantCode, tc.wantMsg)
		})
	}
}

func TestHandler_Convert_NotLoaded(t *testing.T) {
	h := NewRateHandler(emptyStore(), rate.NewConverter(nil, nil))
	req := httptest.NewRequest(http.MethodGet, "/convert?amount=1&from=USD&to=EUR", nil)
	rr := httptest.NewRecorder()

	h.Convert(rr, req)

	requireError(t, rr, http.StatusServiceUnavailable, domain.ErrRatesNotLoaded.Error())
}

func TestHandler_Convert_InternalError(t *testing.T) {
	store := loadedStore(t)
	conv := new(MockConverter)
	conv.On("ConvertInput", "1", "USD", "EUR", mock.Anything).Return(domain.ConversionResult{}, errors.New("boom")).Once()
	h := NewRateHandler(store, conv)

	req := httptest.NewRequest(http.MethodGet, "/convert?amount=1&from=USD&to=EUR", nil)
	rr := httptest.NewRecorder()

	h.Convert(rr, req)

	requireError(t, rr, http.StatusInternalServerError, "ups, couldn't convert this time")
	conv.AssertExpectations(t)
}

func TestWriteJSON_EncodeFailureIs500(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusOK, ConvertResponse{Value: math.Inf(1)})

	requireError(t, rr, http.StatusInternalServerError, "failed to encode response")
}

// --- GetByCodes ---

func withCodes(req *http.Request, base, quote string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("base", base)
	rctx.URLParams.Add("quote", quote)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandler_GetByCodes_Success(t *testing.T) {
	h := NewRateHandler(loadedStore(t), rate.NewConverter(nil, nil))
	req := withCodes(httptest.NewRequest(http.MethodGet, "/rates/usd/jpy", nil), " usd ", "jpy")
	rr := httptest.NewRecorder()

	h.GetByCodes(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetByCodesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "USD", res.Base)
	require.Equal(t, "JPY", res.Quote)
	require.InDelta(t, 150.0, res.Value, 1e-9)
	require.True(t, res.UpdatedAt.Equal(fetchedAt))
}

func TestHandler_GetByCodes_UnknownCurrency(t *testing.T) {
	h := NewRateHandler(loadedStore(t), rate.NewConverter(nil, nil))
	req := withCodes(httptest.NewRequest(http.MethodGet, "/rates/usd/xyz", nil), "usd", "xyz")
	rr := httptest.NewRecorder()

	h.GetByCodes(rr, req)

	requireError(t, rr, http.StatusNotFound, "XYZ")
}

func TestHandler_GetByCodes_NotLoaded(t *testing.T) {
	h := NewRateHandler(emptyStore(), rate.NewConverter(nil, nil))
	req := withCodes(httptest.NewRequest(http.MethodGet, "/rates/usd/eur", nil), "usd", "eur")
	rr := httptest.NewRecorder()

	h.GetByCodes(rr, req)

	requireError(t, rr, http.StatusServiceUnavailable, domain.ErrRatesNotLoaded.Error())
}

// --- GetRates ---

func TestHandler_GetRates_Success(t *testing.T) {
	h := NewRateHandler(loadedStore(t), rate.NewConverter(nil, nil))
	rr := httptest.NewRecorder()

	h.GetRates(rr, httptest.NewRequest(http.MethodGet, "/rates", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetRatesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "USD", res.Base)
	require.True(t, res.FetchedAt.Equal(fetchedAt))
	require.Equal(t, map[string]float64{"USD": 1.0, "EUR": 0.9, "JPY": 150.0}, res.Rates)
}

func TestHandler_GetRates_NotLoaded(t *testing.T) {
	h := NewRateHandler(emptyStore(), rate.NewConverter(nil, nil))
	rr := httptest.NewRecorder()

	h.GetRates(rr, httptest.NewRequest(http.MethodGet, "/rates", nil))

	requireError(t, rr, http.StatusServiceUnavailable, domain.ErrRatesNotLoaded.Error())
}

// --- GetSupportedCodes ---

func TestHandler_GetSupportedCodes_Success(t *testing.T) {
	h := NewRateHandler(loadedStore(t), rate.NewConverter(nil, nil))
	rr := httptest.NewRecorder()

	h.GetSupportedCodes(rr, httptest.NewRequest(http.MethodGet, "/rates/supported-currencies", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetSupportedCodesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, []string{"EUR", "JPY", "USD"}, res.Codes)
}

func TestHandler_GetSupportedCodes_NotLoaded(t *testing.T) {
	h := NewRateHandler(emptyStore(), rate.NewConverter(nil, nil))
	rr := httptest.NewRecorder()

	h.GetSupportedCodes(rr, httptest.NewRequest(http.MethodGet, "/rates/supported-currencies", nil))

	requireError(t, rr, http.StatusServiceUnavailable, domain.ErrRatesNotLoaded.Error())
}
