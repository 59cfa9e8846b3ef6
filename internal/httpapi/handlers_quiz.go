package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/thirdlf03/world-holidays/internal/quiz"
)

const defaultListLimit = 10

// StartSessionHandler creates a session for mode and returns its first
// question.
func (a *API) StartSessionHandler(mode quiz.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		if a.quiz == nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
			return
		}

		session, err := a.quiz.StartSession(r.Context(), mode)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionResponse(session))
	}
}

// HandleSession serves GET (current view) and DELETE (end session).
func (a *API) HandleSession(w http.ResponseWriter, r *http.Request) {
	if a.quiz == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}
	sessionID := strings.TrimSpace(r.PathValue("id"))

	switch r.Method {
	case http.MethodGet:
		session, err := a.quiz.GetSession(r.Context(), sessionID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(session))
	case http.MethodDelete:
		if err := a.quiz.EndSession(r.Context(), sessionID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodDelete)
	}
}

func (a *API) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if a.quiz == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	var request answerRequest
	if err := decodeJSONBody(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	sessionID := strings.TrimSpace(r.PathValue("id"))
	var (
		session quiz.Session
		correct bool
		err     error
	)
	switch {
	case request.Answer != nil && request.Index != nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "send either answer or index, not both"})
		return
	case request.Answer != nil:
		session, correct, err = a.quiz.AnswerTrueFalse(r.Context(), sessionID, *request.Answer)
	case request.Index != nil:
		session, correct, err = a.quiz.AnswerGuess(r.Context(), sessionID, *request.Index)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "answer or index is required"})
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answerResponse{
		Correct: correct,
		Session: toSessionResponse(session),
	})
}

func (a *API) HandleNext(w http.ResponseWriter, r *http.Request) {
	a.handleTransition(w, r, a.quiz.Next)
}

func (a *API) HandleReset(w http.ResponseWriter, r *http.Request) {
	a.handleTransition(w, r, a.quiz.Reset)
}

func (a *API) handleTransition(w http.ResponseWriter, r *http.Request, transition func(ctx context.Context, sessionID string) (quiz.Session, error)) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if a.quiz == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	session, err := transition(r.Context(), strings.TrimSpace(r.PathValue("id")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (a *API) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if a.quiz == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	limit, err := parseIntParam(r, "limit", defaultListLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	sessions, err := a.quiz.ListSessions(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list quiz sessions"})
		return
	}

	response := sessionsResponse{Sessions: make([]sessionResponse, 0, len(sessions))}
	for _, session := range sessions {
		response.Sessions = append(response.Sessions, toSessionResponse(session))
	}
	writeJSON(w, http.StatusOK, response)
}

func (a *API) HandleQuizStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if a.quiz == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	totals, err := a.quiz.ModeTotals(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load quiz statistics"})
		return
	}

	response := quizStatsResponse{Modes: make(map[quiz.Mode]modeStatsView, 2)}
	for _, mode := range []quiz.Mode{quiz.ModeTrueFalse, quiz.ModeGuess} {
		score := totals[mode]
		response.Modes[mode] = modeStatsView{
			Correct:  score.Correct,
			Total:    score.Total,
			Accuracy: quiz.FormatAccuracy(score.Accuracy()),
		}
	}
	writeJSON(w, http.StatusOK, response)
}
