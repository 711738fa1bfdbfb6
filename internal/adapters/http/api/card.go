package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	service "github.com/okian/pitchcard/internal/app"
	"github.com/okian/pitchcard/internal/domain/types"
)

// CardDependencies defines the card pipeline operations.
type CardDependencies interface {
	Summary(ctx context.Context, req types.CardRequest) (*types.Card, error)
	CardSVG(ctx context.Context, req types.CardRequest) ([]byte, *types.Card, error)
}

// CardHandler handles pitcher card requests.
type CardHandler struct {
	deps CardDependencies
}

// NewCardHandler creates a new card handler.
func NewCardHandler(deps CardDependencies) *CardHandler {
	return &CardHandler{deps: deps}
}

// HandleCard handles GET /api/pitchers/{id}/summary and
// GET /api/pitchers/{id}/card.svg, both taking optional start, end and
// session query parameters.
func (h *CardHandler) HandleCard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_card"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, view, ok := pathID(r.URL.Path)
	if !ok {
		writeKind(w, NewKind(op, ErrBadRequest))
		return
	}
	q := r.URL.Query()
	req := types.CardRequest{
		PitcherID: id,
		Start:     q.Get("start"),
		End:       q.Get("end"),
		Session:   q.Get("session"),
	}

	switch view {
	case "summary":
		card, err := h.deps.Summary(r.Context(), req)
		if err != nil {
			writeKind(w, classify(op, err))
			return
		}
		w.Header().Set("X-Render-ID", card.RenderID)
		writeJSON(w, http.StatusOK, card)
	case "card.svg":
		svg, card, err := h.deps.CardSVG(r.Context(), req)
		if err != nil {
			writeKind(w, classify(op, err))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("X-Render-ID", card.RenderID)
		w.Header().Set("Content-Length", strconv.Itoa(len(svg)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(svg)
	default:
		http.NotFound(w, r)
	}
}

// classify maps pipeline errors onto API kinds.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return WrapKind(op, ErrBadRequest, err)
	case errors.Is(err, service.ErrNoPitches):
		return WrapKind(op, ErrNotFound, err)
	case errors.Is(err, service.ErrSuperseded):
		return WrapKind(op, ErrConflict, err)
	case errors.Is(err, service.ErrUpstream):
		return WrapKind(op, ErrUpstream, err)
	case errors.Is(err, service.ErrNotStarted):
		return WrapKind(op, ErrNotReady, err)
	default:
		return Wrap(op, err)
	}
}
