package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kyanaldridge/Ranko-sub002/internal/board"
	"github.com/kyanaldridge/Ranko-sub002/internal/document"
)

// withBoard loads a ranko document, rebuilds its board, runs mutate, and
// writes the reserialized document back. mutate returns a non-zero status to
// abort without saving; the stored document is then left as it was.
func (s *Server) withBoard(w http.ResponseWriter, r *http.Request, mutate func(b *board.Board, meta *document.Meta) (int, string)) {
	id := chi.URLParam(r, "id")

	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		s.log.Error("load ranko failed", zap.String("ranko_id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch ranko")
		return
	}
	if doc == nil {
		respondError(w, http.StatusNotFound, "Ranko not found")
		return
	}

	b, meta := document.Rebuild(doc)
	lockTiers(b)

	if status, msg := mutate(b, &meta); status != 0 {
		respondError(w, status, msg)
		return
	}

	updated := document.Serialize(b, meta, time.Now())
	if err := s.store.SaveDocument(r.Context(), id, updated); err != nil {
		s.log.Error("save ranko failed", zap.String("ranko_id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to save ranko")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// lockTiers protects every tier up to and including the last occupied row,
// matching the rule that a tier backing items must never be deleted.
func lockTiers(b *board.Board) {
	last := -1
	for i := range b.Rows {
		if len(b.Rows[i]) > 0 {
			last = i
		}
	}
	b.SetTierLock(last + 1)
}

// tierIndex parses the 0-based {index} route parameter.
func tierIndex(r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// handleAddRow appends an empty row (and its backing tier).
func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		b.AddRow()
		return 0, ""
	})
}

// handleDeleteRow removes an empty row and its tier. Rows holding items
// cannot be deleted.
func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	index, ok := tierIndex(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid row index")
		return
	}
	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		if !b.DeleteRow(index) {
			return http.StatusConflict, "Row is not empty or does not exist"
		}
		return 0, ""
	})
}

type editTierRequest struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// handleAppendTier adds the next catalog default tier.
func (s *Server) handleAppendTier(w http.ResponseWriter, r *http.Request) {
	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		b.AppendTier()
		return 0, ""
	})
}

// handleEditTier rewrites a tier's code and label.
func (s *Server) handleEditTier(w http.ResponseWriter, r *http.Request) {
	index, ok := tierIndex(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid tier index")
		return
	}
	var req editTierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		if index >= len(b.Tiers) {
			return http.StatusNotFound, "No such tier"
		}
		b.EditTier(index, req.Code, req.Label)
		return 0, ""
	})
}

// handleResetTier restores a tier to its catalog default.
func (s *Server) handleResetTier(w http.ResponseWriter, r *http.Request) {
	index, ok := tierIndex(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid tier index")
		return
	}
	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		if index >= len(b.Tiers) {
			return http.StatusNotFound, "No such tier"
		}
		b.ResetTier(index)
		return 0, ""
	})
}

// handleDeleteTier removes an unlocked tier and its row.
func (s *Server) handleDeleteTier(w http.ResponseWriter, r *http.Request) {
	index, ok := tierIndex(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid tier index")
		return
	}
	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		if index >= len(b.Tiers) {
			return http.StatusNotFound, "No such tier"
		}
		if !b.DeleteTier(index) {
			return http.StatusConflict, "Tier is locked"
		}
		return 0, ""
	})
}
