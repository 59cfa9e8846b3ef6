package httpapi

import (
	"net/http"

	"github.com/thirdlf03/world-holidays/internal/catalog"
	"github.com/thirdlf03/world-holidays/internal/favorites"
)

// HandleFavorites serves GET (list with statistics), POST (add from search)
// and DELETE (clear, behind the auth guard).
func (a *API) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	if a.favorites == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "favorites unavailable"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.listFavorites(w)
	case http.MethodPost:
		a.addFavorites(w, r)
	case http.MethodDelete:
		a.guard.Require(a.clearFavorites)(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (a *API) listFavorites(w http.ResponseWriter) {
	list := a.favorites.List()
	stats := favorites.Statistics(list)
	writeJSON(w, http.StatusOK, favoritesResponse{
		Favorites:  list,
		Statistics: statisticsView{Empty: stats.Empty(), Stats: stats},
	})
}

func (a *API) addFavorites(w http.ResponseWriter, r *http.Request) {
	var request addFavoritesRequest
	if err := decodeJSONBody(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if request.Holidays == nil && request.Rows == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "holidays or rows is required"})
		return
	}

	rows := make([]catalog.SearchRow, 0, len(request.Holidays)+len(request.Rows))
	for _, item := range request.Holidays {
		rows = append(rows, catalog.SearchRow{Holiday: item, Favorite: true})
	}
	rows = append(rows, request.Rows...)

	added, err := a.favorites.AddFromSearch(r.Context(), rows)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, addFavoritesResponse{
		Added: added,
		Total: len(a.favorites.List()),
	})
}

func (a *API) clearFavorites(w http.ResponseWriter, r *http.Request) {
	if err := a.favorites.Clear(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleRemoveFavorites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if a.favorites == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "favorites unavailable"})
		return
	}

	var request removeFavoritesRequest
	if err := decodeJSONBody(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if request.Remove == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "remove is required"})
		return
	}

	removed, err := a.favorites.RemoveSelected(r.Context(), request.Remove)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removeFavoritesResponse{
		Removed: removed,
		Total:   len(a.favorites.List()),
	})
}

func (a *API) HandleGroupedFavorites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if a.favorites == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "favorites unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, groupedFavoritesResponse{Groups: a.favorites.Grouped()})
}
