package web

import (
	"io"
	"net/http"
	"strings"

	"kanban-cli/internal/board"

	"github.com/bytedance/sonic"
	"github.com/starfederation/datastar-go/datastar"
)

const maxBodyBytes = 1 << 20

type dragStartReq struct {
	CardID string `json:"cardId"`
}

type dragOverReq struct {
	ColumnID string          `json:"columnId"`
	Y        float64         `json:"y"`
	Boxes    []board.CardBox `json:"boxes"`
}

type dropReq struct {
	ColumnID string `json:"columnId"`
}

type dropResp struct {
	Moved bool `json:"moved"`
}

// draftSignals is the part of the Datastar signal store the add form uses.
type draftSignals struct {
	Drafts map[string]string `json:"drafts"`
}

func (s *Server) handleFormShow(w http.ResponseWriter, r *http.Request) {
	columnID := strings.TrimSpace(r.PathValue("columnId"))
	s.ctrl.ShowForm(columnID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFormHide(w http.ResponseWriter, r *http.Request) {
	columnID := strings.TrimSpace(r.PathValue("columnId"))
	s.ctrl.HideForm(columnID)

	sse := datastar.NewSSE(w, r)
	_ = sse.MarshalAndPatchSignals(map[string]any{"drafts": map[string]any{columnID: ""}})
}

func (s *Server) handleCardCreate(w http.ResponseWriter, r *http.Request) {
	columnID := strings.TrimSpace(r.PathValue("columnId"))
	if columnID == "" {
		http.Error(w, "missing column id", http.StatusBadRequest)
		return
	}

	var sig draftSignals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.ctrl.AddCard(r.Context(), columnID, sig.Drafts[columnID]) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// The board patch arrives over /events; clear the client's draft here.
	sse := datastar.NewSSE(w, r)
	_ = sse.MarshalAndPatchSignals(map[string]any{"drafts": map[string]any{columnID: ""}})
}

func (s *Server) handleCardDelete(w http.ResponseWriter, r *http.Request) {
	cardID := strings.TrimSpace(r.PathValue("cardId"))
	s.ctrl.DeleteCard(r.Context(), cardID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDragStart(w http.ResponseWriter, r *http.Request) {
	var req dragStartReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.ctrl.DragStart(strings.TrimSpace(req.CardID)) {
		http.Error(w, "not a card", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDragLift(w http.ResponseWriter, r *http.Request) {
	var req dragStartReq
	if !decodeJSON(w, r, &req) {
		return
	}
	s.ctrl.MarkLifted(strings.TrimSpace(req.CardID))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDragOver(w http.ResponseWriter, r *http.Request) {
	var req dragOverReq
	if !decodeJSON(w, r, &req) {
		return
	}
	pl, ok := s.ctrl.DragOver(strings.TrimSpace(req.ColumnID), req.Y, req.Boxes)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, pl)
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropReq
	if !decodeJSON(w, r, &req) {
		return
	}
	moved := s.ctrl.Drop(r.Context(), strings.TrimSpace(req.ColumnID))
	writeJSON(w, http.StatusOK, dropResp{Moved: moved})
}

func (s *Server) handleDragEnd(w http.ResponseWriter, r *http.Request) {
	s.ctrl.DragEnd()
	w.WriteHeader(http.StatusNoContent)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return true
	}
	if err := sonic.ConfigStd.Unmarshal(body, v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
