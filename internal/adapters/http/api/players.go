package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okian/playercards/internal/domain/model"
	"github.com/okian/playercards/internal/domain/types"
	"github.com/okian/playercards/pkg/logger"
)

// deckResponse is the body of GET /api/v1/players.
type deckResponse struct {
	Meta  types.DeckMeta `json:"meta"`
	Cards []model.Card   `json:"cards"`
}

// PlayersHandler serves the deck.
type PlayersHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies, l logger.Logger) *PlayersHandler {
	return &PlayersHandler{deps: deps, logger: l}
}

// HandleList handles GET /api/v1/players.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cards, meta, err := h.deps.Cards(r.Context())
	if err != nil {
		h.logger.Warn(r.Context(), "list cards failed", logger.Error(err))
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deckResponse{Meta: meta, Cards: cards})
}

// HandleGet handles GET /api/v1/players/{number}.
func (h *PlayersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number < 1 {
		writeError(w, http.StatusBadRequest, "invalid_number", ErrBadNumber)
		return
	}

	view, err := h.deps.Card(r.Context(), number)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
