package handler

import (
	"fxconvert/internal/rate"
	"net/http"
	"time"
)

type ConvertResponse struct {
	Amount    float64   `json:"amount" example:"10"`
	From      string    `json:"from" example:"USD"`
	To        string    `json:"to" example:"EUR"`
	Value     float64   `json:"value" example:"9"`
	Formatted string    `json:"formatted" example:"10.00 USD = 9.00 EUR"`
	UpdatedAt time.Time `json:"updated_at" example:"2026-10-18T15:04:05Z"`
}

// Convert handles GET /convert?amount=10&from=USD&to=EUR.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	latest, _ := h.store.Latest()
	res, err := h.converter.ConvertInput(q.Get("amount"), q.Get("from"), q.Get("to"), latest.Table)
	if err != nil {
		writeConversionError(w, "Convert", err)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Amount:    res.Amount,
		From:      res.From,
		To:        res.To,
		Value:     res.Value,
		Formatted: rate.FormatResult(res),
		UpdatedAt: latest.FetchedAt,
	})
}
