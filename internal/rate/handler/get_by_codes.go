package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type GetByCodesResponse struct {
	Base      string    `json:"base" example:"USD"`
	Quote     string    `json:"quote" example:"EUR"`
	Value     float64   `json:"value" example:"0.9231"`
	UpdatedAt time.Time `json:"updated_at" example:"2026-10-18T15:04:05Z"`
}

// GetByCodes returns the cross rate for one unit of base expressed in quote.
func (h *Handler) GetByCodes(w http.ResponseWriter, r *http.Request) {
	base := chi.URLParam(r, "base")
	quote := chi.URLParam(r, "quote")

	latest, _ := h.store.Latest()
	res, err := h.converter.ConvertInput("1", base, quote, latest.Table)
	if err != nil {
		writeConversionError(w, "GetByCodes", err)
		return
	}

	writeJSON(w, http.StatusOK, GetByCodesResponse{
		Base:      res.From,
		Quote:     res.To,
		Value:     res.Value,
		UpdatedAt: latest.FetchedAt,
	})
}
