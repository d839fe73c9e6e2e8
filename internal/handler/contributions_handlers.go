package handler

import (
	"net/http"

	"github.com/mtlprog/portfolio/internal/domain"
	"github.com/mtlprog/portfolio/internal/handler/dto"
)

// handleGetContributions returns the contribution summary shown on the site.
// @Summary Get contribution statistics
// @Description Tries each contribution provider in order; the first positive total wins. When all providers miss, display is "Unable to load".
// @Tags site
// @Produce json
// @Success 200 {object} dto.ContributionsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /contributions [get]
func (h *Handler) handleGetContributions(w http.ResponseWriter, r *http.Request) {
	if h.contributions == nil {
		respondDomainError(w, domain.ErrContributionsDisabled)
		return
	}

	stats, err := h.contributions.Stats(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	respondJSON(w, http.StatusOK, dto.NewContributionsResponse(stats))
}
