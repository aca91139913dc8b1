// Package api exposes the ranko backend over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kyanaldridge/Ranko-sub002/internal/publish"
	"github.com/kyanaldridge/Ranko-sub002/internal/search"
	"github.com/kyanaldridge/Ranko-sub002/internal/storage"
)

// Server holds the HTTP server dependencies.
type Server struct {
	store     *storage.Store
	index     *search.Index
	publisher *publish.Publisher
	log       *zap.Logger
	router    chi.Router
}

// New creates a new API server.
func New(store *storage.Store, index *search.Index, publisher *publish.Publisher, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		store:     store,
		index:     index,
		publisher: publisher,
		log:       log,
		router:    chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*.ranko.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Rankos
		r.Get("/rankos", s.handleListRankos)
		r.Post("/rankos", s.handleCreateRanko)
		r.Get("/rankos/{id}", s.handleGetRanko)
		r.Put("/rankos/{id}", s.handleUpdateRankoDetails)
		r.Delete("/rankos/{id}", s.handleDeleteRanko)
		r.Post("/rankos/{id}/publish", s.handlePublishRanko)

		// Board layout
		r.Post("/rankos/{id}/rows", s.handleAddRow)
		r.Delete("/rankos/{id}/rows/{index}", s.handleDeleteRow)
		r.Post("/rankos/{id}/tiers", s.handleAppendTier)
		r.Put("/rankos/{id}/tiers/{index}", s.handleEditTier)
		r.Post("/rankos/{id}/tiers/{index}/reset", s.handleResetTier)
		r.Delete("/rankos/{id}/tiers/{index}", s.handleDeleteTier)

		// Items
		r.Post("/rankos/{id}/items", s.handleAddItems)
		r.Post("/rankos/{id}/items/move", s.handleMoveItems)
		r.Post("/rankos/{id}/items/delete", s.handleDeleteItems)
		r.Put("/rankos/{id}/items/{itemID}/image", s.handlePutItemImage)
		r.Get("/rankos/{id}/items/{itemID}/image", s.handleGetItemImage)
		r.Delete("/rankos/{id}/items/{itemID}/image", s.handleDeleteItemImage)

		// Search
		r.Get("/search", s.handleSearch)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// requestLogger is chi's Logger middleware shape backed by zap.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
