package httpapi

import (
	"time"

	"github.com/thirdlf03/world-holidays/internal/catalog"
	"github.com/thirdlf03/world-holidays/internal/favorites"
	"github.com/thirdlf03/world-holidays/internal/holiday"
	"github.com/thirdlf03/world-holidays/internal/quiz"
)

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type countriesResponse struct {
	Countries []catalog.CountryOption `json:"countries"`
}

type searchResponse struct {
	Year        int                 `json:"year"`
	CountryCode string              `json:"country_code"`
	Holidays    []catalog.SearchRow `json:"holidays"`
}

type nextHolidaysResponse struct {
	CountryCode string            `json:"country_code"`
	Holidays    []holiday.Holiday `json:"holidays"`
}

type favoritesResponse struct {
	Favorites  []holiday.Holiday `json:"favorites"`
	Statistics statisticsView    `json:"statistics"`
}

type statisticsView struct {
	Empty bool `json:"empty"`
	favorites.Stats
}

type groupedFavoritesResponse struct {
	Groups []favorites.CountryGroup `json:"groups"`
}

// addFavoritesRequest accepts plain holidays (all treated as selected) or
// search rows carrying their own favorite flag.
type addFavoritesRequest struct {
	Holidays []holiday.Holiday   `json:"holidays"`
	Rows     []catalog.SearchRow `json:"rows"`
}

type addFavoritesResponse struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

// removeFavoritesRequest names the entries to drop by date, name and
// country code.
type removeFavoritesRequest struct {
	Remove []holiday.Holiday `json:"remove"`
}

type removeFavoritesResponse struct {
	Removed int `json:"removed"`
	Total   int `json:"total"`
}

type answerRequest struct {
	Answer *bool `json:"answer,omitempty"`
	Index  *int  `json:"index,omitempty"`
}

type answerResponse struct {
	Correct bool            `json:"correct"`
	Session sessionResponse `json:"session"`
}

type sessionResponse struct {
	ID       string     `json:"id"`
	Mode     quiz.Mode  `json:"mode"`
	State    quiz.State `json:"state"`
	Score    quiz.Score `json:"score"`
	Accuracy string     `json:"accuracy"`

	TrueFalse *trueFalseView `json:"true_false,omitempty"`
	Guess     *guessView     `json:"guess,omitempty"`

	SelectedAnswer *bool `json:"selected_answer,omitempty"`
	SelectedIndex  *int  `json:"selected_index,omitempty"`
	LastCorrect    *bool `json:"last_correct,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Answer fields stay nil until the question has been answered.
type trueFalseView struct {
	CountryName string  `json:"country_name"`
	CountryCode string  `json:"country_code"`
	Date        string  `json:"date"`
	IsHoliday   *bool   `json:"is_holiday,omitempty"`
	HolidayName *string `json:"holiday_name,omitempty"`
	LocalName   *string `json:"local_name,omitempty"`
}

type guessView struct {
	HolidayName  string            `json:"holiday_name"`
	LocalName    string            `json:"local_name"`
	Options      []guessOptionView `json:"options"`
	CorrectIndex *int              `json:"correct_index,omitempty"`
}

type guessOptionView struct {
	Date        string `json:"date"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	IsCorrect   *bool  `json:"is_correct,omitempty"`
}

type sessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type modeStatsView struct {
	Correct  int    `json:"correct"`
	Total    int    `json:"total"`
	Accuracy string `json:"accuracy"`
}

type quizStatsResponse struct {
	Modes map[quiz.Mode]modeStatsView `json:"modes"`
}

func toSessionResponse(session quiz.Session) sessionResponse {
	revealed := session.State == quiz.StateAnswered
	response := sessionResponse{
		ID:             session.ID,
		Mode:           session.Mode,
		State:          session.State,
		Score:          session.Score,
		Accuracy:       quiz.FormatAccuracy(session.Score.Accuracy()),
		SelectedAnswer: session.SelectedAnswer,
		SelectedIndex:  session.SelectedIndex,
		LastCorrect:    session.LastCorrect,
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      session.UpdatedAt,
	}

	if q := session.TrueFalse; q != nil {
		view := &trueFalseView{
			CountryName: q.CountryName,
			CountryCode: q.CountryCode,
			Date:        q.Date,
		}
		if revealed {
			isHoliday := q.IsHoliday
			view.IsHoliday = &isHoliday
			view.HolidayName = q.HolidayName
			view.LocalName = q.LocalName
		}
		response.TrueFalse = view
	}

	if q := session.Guess; q != nil {
		view := &guessView{
			HolidayName: q.HolidayName,
			LocalName:   q.LocalName,
			Options:     make([]guessOptionView, 0, len(q.Options)),
		}
		for _, option := range q.Options {
			item := guessOptionView{
				Date:        option.Date,
				CountryCode: option.CountryCode,
				CountryName: option.CountryName,
			}
			if revealed {
				isCorrect := option.IsCorrect
				item.IsCorrect = &isCorrect
			}
			view.Options = append(view.Options, item)
		}
		if revealed {
			correctIndex := q.CorrectIndex
			view.CorrectIndex = &correctIndex
		}
		response.Guess = view
	}

	return response
}
