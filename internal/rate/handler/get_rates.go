package handler

import (
	"fxconvert/internal/domain"
	"net/http"
	"time"
)

type GetRatesResponse struct {
	Base      string             `json:"base" example:"USD"`
	FetchedAt time.Time          `json:"fetched_at" example:"2026-10-18T15:04:05Z"`
	Rates     map[string]float64 `json:"rates"`
}

func (h *Handler) GetRates(w http.ResponseWriter, _ *http.Request) {
	latest, ok := h.store.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, domain.ErrRatesNotLoaded.Error())
		return
	}
	writeJSON(w, http.StatusOK, GetRatesResponse{
		Base:      latest.Table.Base(),
		FetchedAt: latest.FetchedAt,
		Rates:     latest.Table.Rates(),
	})
}
