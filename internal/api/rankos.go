package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kyanaldridge/Ranko-sub002/internal/board"
	"github.com/kyanaldridge/Ranko-sub002/internal/document"
	"github.com/kyanaldridge/Ranko-sub002/internal/models"
	"github.com/kyanaldridge/Ranko-sub002/internal/search"
)

// createRankoRequest is the body for creating a ranko.
type createRankoRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	UserID      string              `json:"user_id"`
	Private     bool                `json:"private"`
	Tags        []string            `json:"tags"`
	Category    models.ListCategory `json:"category"`
}

// updateRankoRequest is the body for updating list details. Absent fields are
// left untouched.
type updateRankoRequest struct {
	Name        *string              `json:"name,omitempty"`
	Description *string              `json:"description,omitempty"`
	Private     *bool                `json:"private,omitempty"`
	Tags        []string             `json:"tags,omitempty"`
	Category    *models.ListCategory `json:"category,omitempty"`
}

// handleCreateRanko creates a new draft ranko with the starter tiers.
func (s *Server) handleCreateRanko(w http.ResponseWriter, r *http.Request) {
	var req createRankoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	id := uuid.New().String()
	meta := document.Meta{
		Details: models.ListDetails{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
			Type:        "tier",
			UserID:      req.UserID,
			Tags:        req.Tags,
			Region:      "AUS",
			Language:    "en",
		},
		Privacy: models.ListPrivacy{
			Private:   req.Private,
			Cloneable: true,
			Comments:  true,
			Likes:     true,
			Shares:    true,
			Saves:     true,
			Status:    "active",
		},
		Category: req.Category,
	}

	doc := document.Serialize(board.New(), meta, time.Now())
	if err := s.store.SaveDocument(r.Context(), id, doc); err != nil {
		s.log.Error("create ranko failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to create ranko")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "document": doc})
}

// handleListRankos returns summaries of every stored ranko.
func (s *Server) handleListRankos(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.ListSummaries(r.Context())
	if err != nil {
		s.log.Error("list rankos failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to list rankos")
		return
	}
	if summaries == nil {
		summaries = []models.ListSummary{}
	}
	respondJSON(w, http.StatusOK, summaries)
}

// handleGetRanko returns a whole ranko document by id.
func (s *Server) handleGetRanko(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		s.log.Error("get ranko failed", zap.String("ranko_id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch ranko")
		return
	}
	if doc == nil {
		respondError(w, http.StatusNotFound, "Ranko not found")
		return
	}

	respondJSON(w, http.StatusOK, doc)
}

// handleUpdateRankoDetails patches the details/privacy/category blocks.
func (s *Server) handleUpdateRankoDetails(w http.ResponseWriter, r *http.Request) {
	var req updateRankoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		if req.Name != nil {
			if *req.Name == "" {
				return http.StatusBadRequest, "name cannot be empty"
			}
			meta.Details.Name = *req.Name
		}
		if req.Description != nil {
			meta.Details.Description = *req.Description
		}
		if req.Private != nil {
			meta.Privacy.Private = *req.Private
		}
		if req.Tags != nil {
			meta.Details.Tags = req.Tags
		}
		if req.Category != nil {
			meta.Category = *req.Category
		}
		return 0, ""
	})
}

// handleDeleteRanko retracts a ranko from the store, the index, the user
// mirror, and the blob store.
func (s *Server) handleDeleteRanko(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch ranko")
		return
	}
	if doc == nil {
		respondError(w, http.StatusNotFound, "Ranko not found")
		return
	}

	if err := s.publisher.Retract(r.Context(), id, doc.Details.UserID); err != nil {
		s.log.Error("retract failed", zap.String("ranko_id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete ranko")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handlePublishRanko pushes the stored document to the search index and the
// user mirror. A category is required before a list can go live.
func (s *Server) handlePublishRanko(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch ranko")
		return
	}
	if doc == nil {
		respondError(w, http.StatusNotFound, "Ranko not found")
		return
	}
	if doc.Category.Name == "" {
		respondError(w, http.StatusBadRequest, "Pick a category before publishing")
		return
	}

	// refresh the updated stamp on the way out
	b, meta := document.Rebuild(doc)
	doc = document.Serialize(b, meta, time.Now())

	if err := s.publisher.Publish(r.Context(), id, doc); err != nil {
		s.log.Error("publish failed", zap.String("ranko_id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to publish ranko")
		return
	}

	respondJSON(w, http.StatusOK, doc)
}

// handleSearch queries the list index.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	records, err := s.index.Search(r.Context(), r.URL.Query().Get("q"), r.URL.Query().Get("category"), 20)
	if err != nil {
		s.log.Error("search failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if records == nil {
		records = []search.ListRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}
