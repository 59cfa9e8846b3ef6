package httpapi

import (
	"net/http"
	"strings"

	"github.com/thirdlf03/world-holidays/internal/catalog"
	"github.com/thirdlf03/world-holidays/internal/holiday"
)

func (a *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (a *API) HandleCountries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if a.catalog == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "holiday catalog unavailable"})
		return
	}

	countries, err := a.catalog.AvailableCountries(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, countriesResponse{Countries: catalog.OptionsFor(countries)})
}

// HandleSearch lists a country's holidays for a year with each row flagged
// when it is already a favorite.
func (a *API) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if a.catalog == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "holiday catalog unavailable"})
		return
	}

	year, err := parseYear(r.PathValue("year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	countryCode := holiday.NormalizeCountryCode(r.PathValue("country"))
	if countryCode == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "country is required"})
		return
	}

	holidays, err := a.catalog.PublicHolidays(r.Context(), year, countryCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var current []holiday.Holiday
	if a.favorites != nil {
		current = a.favorites.List()
	}
	rows := catalog.SearchRows(holidays, current)
	if parseBoolParam(r, "favorites_only") {
		filtered := rows[:0]
		for _, row := range rows {
			if row.Favorite {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Year:        year,
		CountryCode: countryCode,
		Holidays:    rows,
	})
}

func (a *API) HandleNextHolidays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if a.catalog == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "holiday catalog unavailable"})
		return
	}

	countryCode := holiday.NormalizeCountryCode(strings.TrimSpace(r.PathValue("country")))
	if countryCode == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "country is required"})
		return
	}

	holidays, err := a.catalog.NextPublicHolidays(r.Context(), countryCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if holidays == nil {
		holidays = []holiday.Holiday{}
	}
	writeJSON(w, http.StatusOK, nextHolidaysResponse{
		CountryCode: countryCode,
		Holidays:    holidays,
	})
}
