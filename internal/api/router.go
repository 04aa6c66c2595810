package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
	maxQueryLength  = 200
)

// Pagination describes the pagination metadata returned by list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type listResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type viewInfo struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Param  string `json:"param"`
	Footer bool   `json:"footer"`
}

func newRouter(deps Dependencies) http.Handler {
	if deps.Catalog == nil {
		deps.Catalog = NewCatalogStore(catalog.Default())
	}

	if deps.RateLimiter == nil {
		// Default rate limit: 60 requests per minute with burst of 10
		deps.RateLimiter = NewRateLimiter(60, 10)
		deps.RateLimiter.CleanupRoutine(context.Background(), DefaultCleanupInterval)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(SecurityMiddleware)
	r.Use(InputSanitizationMiddleware)
	r.Use(deps.RateLimiter.RateLimit)

	r.Get("/healthz", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/views", listViewsHandler)
		r.Get("/categories", listCategoriesHandler(deps.Catalog))
		r.Get("/videos", listVideosHandler(deps.Catalog))
		r.Get("/videos/{id}", getVideoHandler(deps.Catalog))
		r.Get("/posts", listPostsHandler(deps.Catalog))
		r.Get("/posts/{id}", getPostHandler(deps.Catalog))
		r.Get("/agents", listAgentsHandler(deps.Catalog))
		r.Get("/tools", listToolsHandler(deps.Catalog))
		r.Get("/studio-tools", listStudioToolsHandler(deps.Catalog))
		r.Get("/search", searchHandler(deps.Catalog))
	})

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func listViewsHandler(w http.ResponseWriter, _ *http.Request) {
	views := nav.AllViews()
	out := make([]viewInfo, 0, len(views))
	for _, v := range views {
		out = append(out, viewInfo{
			Name:   v.String(),
			Title:  v.Title(),
			Param:  v.Param().String(),
			Footer: nav.FooterVisible(v),
		})
	}
	writeJSON(w, http.StatusOK, map[string][]viewInfo{"data": out})
}

func listCategoriesHandler(src CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]catalog.Category{"data": src.Catalog().Categories()})
	}
}

func listVideosHandler(src CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat := src.Catalog()
		category := strings.TrimSpace(r.URL.Query().Get("category"))
		if category != "" && category != catalog.AllCategories && !cat.HasCategory(category) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", category))
			return
		}
		query, ok := queryParam(w, r)
		if !ok {
			return
		}

		videos := cat.VideosInCategory(category)
		if query != "" {
			hits := cat.Search(query).Videos
			keep := make(map[string]bool, len(hits))
			for _, v := range hits {
				keep[v.ID] = true
			}
			filtered := videos[:0]
			for _, v := range videos {
				if keep[v.ID] {
					filtered = append(filtered, v)
				}
			}
			videos = filtered
		}
		writePage(w, r, videos)
	}
}

func getVideoHandler(src CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := src.Catalog().Video(chi.URLParam(r, "id"))
		if err != nil {
			writeLookupError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func listPostsHandler(src CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, r, src.Catalog().Posts())
	}
}

type postResponse struct {
	catalog.Post
	Excerpt string `json:"excerpt"`
}

func getPostHandler(src CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := src.Catalog().Post(chi.URLParam(r, "id"))
		if err != nil {
			writeLookupError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, postResponse{Post: p, Excerpt: catalog.Excerpt(p, catalog.ExcerptLength)})
	}
}

func listAgentsHandler(src CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, r, src.Catalog().Agents())
	}
}

func listToolsHandler(src CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, r, src.Catalog().Tools())
	}
}

func listStudioToolsHandler(src CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, r, src.Catalog().StudioTools())
	}
}

func searchHandler(src CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, ok := queryParam(w, r)
		if !ok {
			return
		}
		if query == "" {
			writeError(w, http.StatusBadRequest, "query parameter q is required")
			return
		}
		res := src.Catalog().Search(query)
		writeJSON(w, http.StatusOK, struct {
			Query   string          `json:"query"`
			Total   int             `json:"total"`
			Results catalog.Results `json:"results"`
		}{Query: query, Total: res.Len(), Results: res})
	}
}

func queryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if !validateInputLength(q, maxQueryLength) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("q must be at most %d characters", maxQueryLength))
		return "", false
	}
	return q, true
}

func writePage[T any](w http.ResponseWriter, r *http.Request, items []T) {
	page, err := parsePositiveInt(r, "page", defaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pageSize, err := parsePositiveInt(r, "page_size", defaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	data, p := paginate(items, page, pageSize)
	writeJSON(w, http.StatusOK, listResponse[T]{Data: data, Pagination: p})
}

func paginate[T any](items []T, page, pageSize int) ([]T, Pagination) {
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	// Pages past the end are empty. Comparing page numbers first keeps
	// (page-1)*pageSize from overflowing on huge page values.
	start := total
	if page-1 < totalPages {
		start = (page - 1) * pageSize
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	data := make([]T, 0, end-start)
	data = append(data, items[start:end]...)
	return data, Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func parsePositiveInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("invalid value for %s", key)
	}

	return value, nil
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "failed to read catalog")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
