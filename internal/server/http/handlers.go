package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"chessmatch/internal/chess"
	"chessmatch/internal/match"
	"chessmatch/internal/server/game"
)

// Handler 实现 http.Handler，用于 /api/* 路由。所有接口都是 POST + JSON。
type Handler struct {
	sess *game.Session
	log  *zap.Logger
}

func NewHandler(sess *game.Session, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{sess: sess, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/state":
		h.handleState(w, r)
	case "/api/move":
		h.handleMove(w, r)
	case "/api/promote":
		h.handlePromote(w, r)
	case "/api/legal":
		h.handleLegal(w, r)
	case "/api/undo":
		h.handleStep(w, r, h.sess.Controller().Undo)
	case "/api/redo":
		h.handleStep(w, r, h.sess.Controller().Redo)
	case "/api/reset":
		h.handleReset(w, r)
	case "/api/mode":
		h.handleMode(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) state() StateResponse {
	return snapshotToDTO(h.sess.ID(), h.sess.Controller().Snapshot())
}

// 空 body 当作 {}
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.state())
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	mv, ok := dtoToMove(req.MoveDTO)
	if !ok {
		h.writeOutcome(w, match.Outcome{Kind: match.Rejected, Reason: match.ReasonInvalidSquare})
		return
	}
	out := h.sess.Controller().AttemptMove(mv)
	if out.Kind == match.Applied {
		h.sess.Touch()
	}
	h.log.Debug("move request", zap.Stringer("move", mv), zap.Stringer("outcome", out))
	h.writeOutcome(w, out)
}

func (h *Handler) handlePromote(w http.ResponseWriter, r *http.Request) {
	var req PromoteRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	pt, ok := chess.ParsePieceType(req.Piece)
	if !ok {
		h.writeOutcome(w, match.Outcome{Kind: match.Rejected, Reason: match.ReasonInvalidPromote})
		return
	}
	out := h.sess.Controller().ChoosePromotion(pt)
	if out.Kind == match.Applied {
		h.sess.Touch()
	}
	h.writeOutcome(w, out)
}

func (h *Handler) handleLegal(w http.ResponseWriter, r *http.Request) {
	var req LegalRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	sq, err := chess.ParseSquare(req.Square)
	if err != nil {
		http.Error(w, "invalid square", http.StatusBadRequest)
		return
	}
	dests := h.sess.Controller().LegalDestinations(sq)
	resp := LegalResponse{Square: sq.String(), Destinations: make([]string, 0, len(dests))}
	for _, d := range dests {
		resp.Destinations = append(resp.Destinations, d.String())
	}
	h.writeJSON(w, resp)
}

func (h *Handler) handleStep(w http.ResponseWriter, r *http.Request, step func() bool) {
	ok := step()
	if ok {
		h.sess.Touch()
	}
	h.writeJSON(w, StepResponse{OK: ok, State: h.state()})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.sess.Reset()
	h.writeJSON(w, h.state())
}

func (h *Handler) handleMode(w http.ResponseWriter, r *http.Request) {
	var req ModeRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	mode, err := match.ParseMode(req.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.sess.SetMode(mode, parseColor(req.EngineSide))
	h.writeJSON(w, h.state())
}

func (h *Handler) writeOutcome(w http.ResponseWriter, out match.Outcome) {
	resp := OutcomeResponse{
		Result:   out.Kind.String(),
		Reason:   string(out.Reason),
		Notation: out.Notation,
		State:    h.state(),
	}
	h.writeJSON(w, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("writeJSON error", zap.Error(err))
	}
}
