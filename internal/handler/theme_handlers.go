package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mtlprog/portfolio/internal/domain"
	"github.com/mtlprog/portfolio/internal/handler/dto"
	"github.com/mtlprog/portfolio/internal/service"
)

const (
	// ThemeCookie holds the saved theme.
	ThemeCookie = "theme"

	// PrefersColorSchemeHeader is the client hint carrying the system preference.
	PrefersColorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

	themeCookieMaxAge = 365 * 24 * 60 * 60
)

// handleGetTheme returns the theme the page should render with.
// @Summary Get theme
// @Description Saved theme cookie first, then the Sec-CH-Prefers-Color-Scheme hint, then dark.
// @Tags site
// @Produce json
// @Success 200 {object} dto.ThemeResponse
// @Router /theme [get]
func (h *Handler) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, source := h.resolveTheme(r)

	advertiseThemeHint(w)
	respondJSON(w, http.StatusOK, dto.ThemeResponse{Theme: string(theme), Source: string(source)})
}

// handleSetTheme saves an explicit theme.
// @Summary Set theme
// @Tags site
// @Accept json
// @Produce json
// @Param request body dto.SetThemeRequest true "Theme to save"
// @Success 200 {object} dto.ThemeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /theme [put]
func (h *Handler) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req dto.SetThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	theme, err := service.ParseTheme(req.Theme)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.saveTheme(w, r, theme)
}

// handleToggleTheme flips the current theme and saves the result.
// @Summary Toggle theme
// @Tags site
// @Produce json
// @Success 200 {object} dto.ThemeResponse
// @Router /theme/toggle [post]
func (h *Handler) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	current, _ := h.resolveTheme(r)
	h.saveTheme(w, r, h.themes.Toggle(current))
}

func (h *Handler) resolveTheme(r *http.Request) (domain.Theme, domain.ThemeSource) {
	saved := ""
	if cookie, err := r.Cookie(ThemeCookie); err == nil {
		saved = cookie.Value
	}
	return h.themes.Resolve(saved, r.Header.Get(PrefersColorSchemeHeader))
}

func (h *Handler) saveTheme(w http.ResponseWriter, r *http.Request, theme domain.Theme) {
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    string(theme),
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	advertiseThemeHint(w)
	respondJSON(w, http.StatusOK, dto.ThemeResponse{Theme: string(theme), Source: string(domain.ThemeSourceSaved)})
}

func advertiseThemeHint(w http.ResponseWriter) {
	w.Header().Set("Accept-CH", PrefersColorSchemeHeader)
	w.Header().Add("Vary", PrefersColorSchemeHeader)
	w.Header().Add("Vary", "Cookie")
}
