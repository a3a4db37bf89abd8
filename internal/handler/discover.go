package handler

import (
	"net/http"

	"picshare/internal/httputil"
	"picshare/internal/service"
)

// DiscoverHandler proxies search queries to third-party catalogs so
// API keys never reach the client.
type DiscoverHandler struct {
	discoverService *service.DiscoverService
}

// NewDiscoverHandler wires dependencies for discover endpoints.
func NewDiscoverHandler(discoverService *service.DiscoverService) *DiscoverHandler {
	return &DiscoverHandler{discoverService: discoverService}
}

// SearchMovies searches TMDB movies and series.
// GET /apis/movies?query=...
func (h *DiscoverHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		httputil.WriteBadRequest(w, "Query is required")
		return
	}

	results, err := h.discoverService.SearchMovies(r.Context(), query)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to search movies")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, results)
}

// SearchGames searches the IGDB catalog.
// GET /apis/videogames?query=...
func (h *DiscoverHandler) SearchGames(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		httputil.WriteBadRequest(w, "Query is required")
		return
	}

	results, err := h.discoverService.SearchGames(r.Context(), query)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to search games")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, results)
}

// SearchBooks searches Google Books and passes the payload through.
// GET /apis/books?query=...
func (h *DiscoverHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		httputil.WriteBadRequest(w, "Query is required")
		return
	}

	results, err := h.discoverService.SearchBooks(r.Context(), query)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to search books")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, results)
}

// SearchMusic searches Deezer and passes the payload through.
// GET /apis/music?query=...
func (h *DiscoverHandler) SearchMusic(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		httputil.WriteBadRequest(w, "Query is required")
		return
	}

	results, err := h.discoverService.SearchMusic(r.Context(), query)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to search music")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, results)
}
