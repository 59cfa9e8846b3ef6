package httpapi

import (
	"net/http"

	"github.com/thirdlf03/world-holidays/internal/quiz"
)

const maxLoggedBodyBytes = 512

func NewRouter(deps Dependencies) http.Handler {
	api := NewAPI(deps)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", api.HandleHealth)

	mux.HandleFunc("/countries", api.HandleCountries)
	mux.HandleFunc("/holidays/{year}/{country}", api.HandleSearch)
	mux.HandleFunc("/holidays/next/{country}", api.HandleNextHolidays)

	mux.HandleFunc("/favorites", api.HandleFavorites)
	mux.HandleFunc("/favorites/grouped", api.HandleGroupedFavorites)
	mux.HandleFunc("/favorites/remove", api.guard.Require(api.HandleRemoveFavorites))

	// Literal mode paths; a {mode} wildcard would overlap /quiz/sessions/{id}.
	mux.HandleFunc("/quiz/true-false/sessions", api.StartSessionHandler(quiz.ModeTrueFalse))
	mux.HandleFunc("/quiz/guess/sessions", api.StartSessionHandler(quiz.ModeGuess))
	mux.HandleFunc("/quiz/sessions", api.HandleListSessions)
	mux.HandleFunc("/quiz/sessions/{id}", api.HandleSession)
	mux.HandleFunc("/quiz/sessions/{id}/answer", api.HandleAnswer)
	mux.HandleFunc("/quiz/sessions/{id}/next", api.HandleNext)
	mux.HandleFunc("/quiz/sessions/{id}/reset", api.HandleReset)
	mux.HandleFunc("/quiz/stats", api.HandleQuizStats)

	return withRecovery(withRequestLogging(mux, api.logger, maxLoggedBodyBytes), api.logger)
}
