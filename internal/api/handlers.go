package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/frabrice/insightium/internal/catalog"
	"github.com/frabrice/insightium/internal/database"
	"github.com/frabrice/insightium/internal/models"
	"github.com/go-chi/chi/v5"
)

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

type App struct {
	DB             *database.DB
	ItemRepo       *database.ItemRepository
	ProgressRepo   *database.ProgressRepository
	PlayerOrigin   string
	AllowedOrigins []string
	PageSize       int
}

func (app *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListContentHandler serves one collection filtered, sorted and paginated
// per the q/category/sort/page query parameters.
func (app *App) ListContentHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := models.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown content collection")
		return
	}

	items, err := app.ItemRepo.ListItemsByKind(kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Content catalog unavailable")
		return
	}

	params := r.URL.Query()
	query := catalog.Query{
		Search:   params.Get("q"),
		Category: params.Get("category"),
		Sort:     catalog.ParseSortKey(params.Get("sort")),
	}
	if query.Category == "" {
		query.Category = catalog.AllCategories
	}

	view := catalog.Apply(items, query)

	page := 1
	if p, err := strconv.Atoi(params.Get("page")); err == nil && p > 0 {
		page = p
	}
	writeData(w, http.StatusOK, paginate(view, page, app.PageSize))
}

// GetContentHandler serves a single item by ID.
func (app *App) GetContentHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := models.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown content collection")
		return
	}

	item, err := app.ItemRepo.GetItemByID(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Content not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Content catalog unavailable")
		return
	}
	if item.Kind != kind {
		writeError(w, http.StatusNotFound, "Content not found")
		return
	}

	writeData(w, http.StatusOK, item)
}

// CategoriesHandler serves the distinct categories of a collection for
// the filter dropdown.
func (app *App) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := models.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown content collection")
		return
	}

	categories, err := app.ItemRepo.Categories(kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Content catalog unavailable")
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeData(w, http.StatusOK, categories)
}

func paginate(items []models.MediaItem, page, pageSize int) models.ItemPage {
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return models.ItemPage{
		Items: items[start:end],
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			HasMore:     page < totalPages,
			TotalItems:  total,
		},
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
	writeJSON(w, status, models.Envelope{Success: true, Data: payload})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.Envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, envelope models.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope)
}
