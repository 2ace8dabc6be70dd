package handler

import (
	"fxconvert/internal/domain"
	"net/http"
)

type GetSupportedCodesResponse struct {
	Codes []string `json:"codes" example:"EUR,JPY,USD"`
}

// GetSupportedCodes lists currency codes of the current table in lexicographic order.
func (h *Handler) GetSupportedCodes(w http.ResponseWriter, _ *http.Request) {
	latest, ok := h.store.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, domain.ErrRatesNotLoaded.Error())
		return
	}
	writeJSON(w, http.StatusOK, GetSupportedCodesResponse{
		Codes: latest.Table.Codes(),
	})
}
