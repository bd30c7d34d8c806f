package api

import (
	"fmt"
	"net/http"
	"strings"
)

// LogoHandler answers club logo lookups.
type LogoHandler struct {
	deps Dependencies
}

// NewLogoHandler creates a new logo handler.
func NewLogoHandler(deps Dependencies) *LogoHandler {
	return &LogoHandler{deps: deps}
}

// HandleGet handles GET /api/v1/logo?club=...
func (h *LogoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	club := r.URL.Query().Get("club")
	if strings.TrimSpace(club) == "" {
		writeError(w, http.StatusBadRequest, "missing_club", ErrMissingClub)
		return
	}

	res := h.deps.ResolveLogo(r.Context(), club)
	if !res.Found {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: %q", ErrNoLogo, club))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
