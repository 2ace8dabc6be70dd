package handler

import (
	"encoding/json"
	"errors"
	"fxconvert/internal/domain"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ratesSource interface {
	Latest() (domain.FetchResult, bool)
}

type converter interface {
	ConvertInput(rawAmount, from, to string, table *domain.RateTable) (domain.ConversionResult, error)
}

type Handler struct {
	store     ratesSource
	converter converter
}

func NewRateHandler(store ratesSource, converter converter) *Handler {
	return &Handler{store: store, converter: converter}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

// writeJSON encodes body before any header is sent so an encoding failure can still become a 500.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode response")
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(append(payload, '\n'))
}

// writeConversionError maps conversion failures onto HTTP statuses.
func writeConversionError(w http.ResponseWriter, handlerName string, err error) {
	switch {
	case errors.Is(err, domain.ErrRatesNotLoaded):
		writeError(w, http.StatusServiceUnavailable, domain.ErrRatesNotLoaded.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownCurrency):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		msg := "ups, couldn't convert this time"
		logrus.WithError(err).WithField("handler", handlerName).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
	}
}
