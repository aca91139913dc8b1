package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kyanaldridge/Ranko-sub002/internal/board"
	"github.com/kyanaldridge/Ranko-sub002/internal/document"
	"github.com/kyanaldridge/Ranko-sub002/internal/models"
	"github.com/kyanaldridge/Ranko-sub002/internal/publish"
	"github.com/kyanaldridge/Ranko-sub002/internal/storage"
)

// newItemRequest is one item in an add-items call.
type newItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// addItemsRequest adds one or more items to a row (bulk add). Row defaults
// to 1.
type addItemsRequest struct {
	Items []newItemRequest `json:"items"`
	Row   int              `json:"row"`
}

// moveItemsRequest reassigns items to the 1-based target row.
type moveItemsRequest struct {
	IDs []string `json:"ids"`
	Row int      `json:"row"`
}

// deleteItemsRequest removes items from the board.
type deleteItemsRequest struct {
	IDs []string `json:"ids"`
}

// handleAddItems stages new items and places them at the end of the target
// row. An item without a name is a validation error and nothing is saved.
func (s *Server) handleAddItems(w http.ResponseWriter, r *http.Request) {
	var req addItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "items are required")
		return
	}
	for _, it := range req.Items {
		if it.Name == "" {
			respondError(w, http.StatusBadRequest, "every item needs a name")
			return
		}
	}
	if req.Row < 1 {
		req.Row = 1
	}

	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		ids := make([]string, 0, len(req.Items))
		for _, it := range req.Items {
			image := it.Image
			if image == "" {
				image = models.PlaceholderItemImage
			}
			id := uuid.New().String()
			ids = append(ids, id)
			b.AddToPool(models.Item{
				ID:          id,
				Name:        models.NormalizeItemName(it.Name),
				Description: models.NormalizeItemDescription(it.Description),
				Image:       image,
			})
		}
		b.MoveItems(ids, req.Row)
		return 0, ""
	})
}

// handleMoveItems reassigns items between rows.
func (s *Server) handleMoveItems(w http.ResponseWriter, r *http.Request) {
	var req moveItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.IDs) == 0 || req.Row < 1 {
		respondError(w, http.StatusBadRequest, "ids and a target row are required")
		return
	}
	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		b.MoveItems(req.IDs, req.Row)
		return 0, ""
	})
}

// handleDeleteItems removes items from every row, then clears their stored
// images.
func (s *Server) handleDeleteItems(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req deleteItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		respondError(w, http.StatusBadRequest, "ids are required")
		return
	}
	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		b.DeleteItems(req.IDs)
		for _, itemID := range req.IDs {
			_ = s.store.DeleteBlob(r.Context(), publish.ItemImagePath(id, itemID))
		}
		return 0, ""
	})
}

// handlePutItemImage stores an item's image bytes and points the item's
// image URL at the served copy.
func (s *Server) handlePutItemImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 5<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Image too large or unreadable")
		return
	}
	if len(data) == 0 {
		respondError(w, http.StatusBadRequest, "Image body is required")
		return
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		item, _, ok := b.FindItem(itemID)
		if !ok {
			return http.StatusNotFound, "No such item"
		}
		err := s.store.PutBlob(r.Context(), storage.Blob{
			Path:        publish.ItemImagePath(id, itemID),
			ContentType: contentType,
			Metadata:    map[string]string{"ranko_id": id, "item_id": itemID},
			Data:        data,
		})
		if err != nil {
			s.log.Error("image upload failed", zap.Error(err))
			return http.StatusInternalServerError, "Failed to store image"
		}
		item.Image = "/api/rankos/" + id + "/items/" + itemID + "/image"
		b.UpdateItem(item)
		return 0, ""
	})
}

// handleGetItemImage serves stored image bytes.
func (s *Server) handleGetItemImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	blob, err := s.store.GetBlob(r.Context(), publish.ItemImagePath(id, itemID))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read image")
		return
	}
	if blob == nil {
		respondError(w, http.StatusNotFound, "No image for this item")
		return
	}
	w.Header().Set("Content-Type", blob.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(blob.Data)
}

// handleDeleteItemImage removes the stored image and resets the item to the
// placeholder.
func (s *Server) handleDeleteItemImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	s.withBoard(w, r, func(b *board.Board, meta *document.Meta) (int, string) {
		item, _, ok := b.FindItem(itemID)
		if !ok {
			return http.StatusNotFound, "No such item"
		}
		if err := s.store.DeleteBlob(r.Context(), publish.ItemImagePath(id, itemID)); err != nil {
			return http.StatusInternalServerError, "Failed to delete image"
		}
		item.Image = models.PlaceholderItemImage
		b.UpdateItem(item)
		return 0, ""
	})
}
