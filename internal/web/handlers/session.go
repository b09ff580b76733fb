package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lmalina/shape-rank/internal/config"
	"github.com/lmalina/shape-rank/internal/session"
)

// SessionHandler exposes the comparison-session state machine over HTTP.
type SessionHandler struct {
	cfg     *config.Config
	session *session.Session
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(cfg *config.Config, sess *session.Session) *SessionHandler {
	return &SessionHandler{cfg: cfg, session: sess}
}

// State returns the full session snapshot for the UI.
func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.session.Snapshot())
}

// selectRequest carries a partial selection update; absent fields are untouched.
type selectRequest struct {
	ObjectID   *int    `json:"object_id"`
	CategoryID *string `json:"category_id"`
	Method     *string `json:"method"`
}

// Select updates the object/category/method selection.
func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.CategoryID != nil {
		if h.cfg.Catalog.Category(*req.CategoryID) == nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", *req.CategoryID))
			return
		}
		h.session.SelectCategory(*req.CategoryID)
	}
	if req.Method != nil {
		if !h.cfg.Catalog.ValidMethod(*req.Method) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown method %q", *req.Method))
			return
		}
		h.session.SelectMethod(*req.Method)
	}
	if req.ObjectID != nil {
		if err := h.session.SelectObject(*req.ObjectID); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	respondJSON(w, http.StatusOK, h.session.Snapshot())
}

// Compare runs the selected comparison (single method or compare_all).
func (h *SessionHandler) Compare(w http.ResponseWriter, r *http.Request) {
	err := h.session.Compare(r.Context())
	switch {
	case errors.Is(err, session.ErrIncompleteSelection):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, session.ErrSuperseded):
		// A newer compare replaced this one; its state is already current.
		respondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusBadGateway, fmt.Sprintf("comparison failed: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, h.session.Snapshot())
}

// rankRequest is the assign command issued by a drag-and-drop move.
// A null or absent rank drops the identity back to the unranked pool.
type rankRequest struct {
	Identity string `json:"identity"`
	Rank     *int   `json:"rank"`
	PrevRank *int   `json:"prev_rank"`
}

// Rank applies one rank-assignment command to the active combination.
func (h *SessionHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Identity == "" {
		respondError(w, http.StatusBadRequest, "identity is required")
		return
	}

	newRank := session.Unranked
	if req.Rank != nil {
		newRank = *req.Rank
	}
	prevRank := session.Unranked
	if req.PrevRank != nil {
		prevRank = *req.PrevRank
	}

	key := h.session.CurrentKey()
	if key == "" {
		respondError(w, http.StatusBadRequest, "no combination selected")
		return
	}

	if err := h.session.Assign(key, req.Identity, newRank, prevRank); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.session.Snapshot())
}

// Submit sends the active combination's completed ranking to the backend.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	err := h.session.Submit(r.Context())
	switch {
	case errors.Is(err, session.ErrNotReady), errors.Is(err, session.ErrIncompleteSelection):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusBadGateway, fmt.Sprintf("submission failed: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, h.session.Snapshot())
}

// Catalog returns the static category and method catalog for the UI.
func (h *SessionHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"categories":  h.cfg.Catalog.Categories,
		"methods":     h.cfg.Catalog.Methods,
		"compare_all": config.CompareAll,
	})
}
