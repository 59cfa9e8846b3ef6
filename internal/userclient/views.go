package userclient

import (
	"fmt"
	"io"
	"strings"

	"github.com/thirdlf03/world-holidays/internal/catalog"
	"github.com/thirdlf03/world-holidays/internal/favorites"
	"github.com/thirdlf03/world-holidays/internal/holiday"
	"github.com/thirdlf03/world-holidays/internal/quiz"
)

// The REPL keeps one explicit model per screen. Commands move a model from
// one state to the next; render functions only read it.

type searchView struct {
	year        int
	countryCode string
	rows        []catalog.SearchRow
}

func (v *searchView) loaded() bool {
	return v.countryCode != ""
}

func (v *searchView) show(payload searchResponse) {
	v.year = payload.Year
	v.countryCode = payload.CountryCode
	v.rows = payload.Holidays
}

func (v *searchView) selected(indexes []int) []holiday.Holiday {
	picked := make([]holiday.Holiday, 0, len(indexes))
	for _, index := range indexes {
		picked = append(picked, v.rows[index].Holiday)
	}
	return picked
}

func (v *searchView) markFavorites(indexes []int) {
	for _, index := range indexes {
		v.rows[index].Favorite = true
	}
}

type favoritesView struct {
	loaded bool
	list   []holiday.Holiday
	stats  statisticsItem
}

func (v *favoritesView) show(payload favoritesResponse) {
	v.loaded = true
	v.list = payload.Favorites
	v.stats = payload.Statistics
}

func (v *favoritesView) selected(indexes []int) []holiday.Holiday {
	picked := make([]holiday.Holiday, 0, len(indexes))
	for _, index := range indexes {
		picked = append(picked, v.list[index])
	}
	return picked
}

type quizPhase int

const (
	phaseIdle quizPhase = iota
	phaseAwaiting
	phaseAnswered
	phaseUnavailable
)

type quizView struct {
	mode    quiz.Mode
	started bool
	session sessionItem
}

func (v *quizView) phase() quizPhase {
	if !v.started {
		return phaseIdle
	}
	switch v.session.State {
	case quiz.StateAwaitingAnswer:
		return phaseAwaiting
	case quiz.StateAnswered:
		return phaseAnswered
	default:
		return phaseUnavailable
	}
}

func (v *quizView) show(session sessionItem) {
	v.started = true
	v.session = session
}

func (v *quizView) expire() {
	v.started = false
	v.session = sessionItem{}
}

func modeLabel(mode quiz.Mode) string {
	if mode == quiz.ModeTrueFalse {
		return "Holiday true/false"
	}
	return "Guess the holiday"
}

func renderCountries(out io.Writer, options []catalog.CountryOption, filter string) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	shown := 0
	for _, option := range options {
		if filter != "" && !strings.Contains(strings.ToLower(option.Label), filter) {
			continue
		}
		fmt.Fprintf(out, "  %s\n", option.Label)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(out, "No countries found.")
	}
}

func renderSearch(out io.Writer, v *searchView) {
	if len(v.rows) == 0 {
		fmt.Fprintf(out, "No holidays found for %s in %d.\n", v.countryCode, v.year)
		return
	}

	fmt.Fprintf(out, "Holidays in %s for %d:\n", v.countryCode, v.year)
	for idx, row := range v.rows {
		marker := " "
		if row.Favorite {
			marker = "*"
		}
		fmt.Fprintf(out, "%3d. [%s] %s  %s\n", idx+1, marker, row.Date, formatNames(row.Name, row.LocalName))
	}
}

func renderHolidays(out io.Writer, countryCode string, holidays []holiday.Holiday) {
	if len(holidays) == 0 {
		fmt.Fprintf(out, "No upcoming holidays for %s.\n", countryCode)
		return
	}
	fmt.Fprintf(out, "Upcoming holidays in %s:\n", countryCode)
	for _, item := range holidays {
		fmt.Fprintf(out, "  %s  %s\n", item.Date, formatNames(item.Name, item.LocalName))
	}
}

func renderFavorites(out io.Writer, v *favoritesView) {
	if len(v.list) == 0 {
		fmt.Fprintln(out, "No favorites yet.")
		return
	}

	fmt.Fprintln(out, "Favorites:")
	for idx, item := range v.list {
		fmt.Fprintf(out, "%3d. %s  %s  %s\n", idx+1, item.Date, item.CountryCode, formatNames(item.Name, item.LocalName))
	}

	stats := v.stats
	fmt.Fprintf(out, "Total: %d holidays across %d countries", stats.TotalHolidays, stats.TotalCountries)
	if stats.MostMonth > 0 {
		fmt.Fprintf(out, ", busiest month: %02d", stats.MostMonth)
	}
	fmt.Fprintln(out)
}

func renderGroups(out io.Writer, groups []favorites.CountryGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(out, "No favorites yet.")
		return
	}
	for _, group := range groups {
		fmt.Fprintf(out, "%s (%d):\n", group.CountryCode, len(group.Holidays))
		for _, item := range group.Holidays {
			fmt.Fprintf(out, "  %s  %s\n", item.Date, formatNames(item.Name, item.LocalName))
		}
	}
}

func renderQuiz(out io.Writer, v *quizView) {
	session := v.session
	fmt.Fprintf(out, "[%s]\n", modeLabel(v.mode))

	switch v.phase() {
	case phaseIdle:
		fmt.Fprintln(out, "No quiz in progress.")
		return
	case phaseUnavailable:
		fmt.Fprintln(out, "No question available right now. Type 'next' to try again.")
	case phaseAwaiting:
		renderQuestion(out, session)
		if session.Mode == quiz.ModeTrueFalse {
			fmt.Fprintln(out, "Answer with: answer yes|no")
		} else {
			fmt.Fprintln(out, "Answer with: answer <number>")
		}
	case phaseAnswered:
		renderQuestion(out, session)
		renderResult(out, session)
		fmt.Fprintln(out, "Type 'next' for another question.")
	}

	fmt.Fprintf(out, "Score: %d/%d (%s%%)\n", session.Score.Correct, session.Score.Total, session.Accuracy)
}

func renderQuestion(out io.Writer, session sessionItem) {
	if q := session.TrueFalse; q != nil {
		fmt.Fprintf(out, "Is %s a public holiday in %s (%s)?\n", q.Date, q.CountryName, q.CountryCode)
		return
	}
	if q := session.Guess; q != nil {
		fmt.Fprintf(out, "Which date and country celebrate %q?\n", formatNames(q.HolidayName, q.LocalName))
		for idx, option := range q.Options {
			line := fmt.Sprintf("  %d. %s  %s (%s)", idx+1, option.Date, option.CountryName, option.CountryCode)
			if option.IsCorrect != nil && *option.IsCorrect {
				line += "  <- correct"
			}
			if session.SelectedIndex != nil && *session.SelectedIndex == idx {
				line += "  <- your answer"
			}
			fmt.Fprintln(out, line)
		}
	}
}

func renderResult(out io.Writer, session sessionItem) {
	if session.LastCorrect != nil && *session.LastCorrect {
		fmt.Fprintln(out, "Correct!")
	} else {
		fmt.Fprintln(out, "Wrong.")
	}

	q := session.TrueFalse
	if q == nil || q.IsHoliday == nil {
		return
	}
	if *q.IsHoliday && q.HolidayName != nil {
		localName := ""
		if q.LocalName != nil {
			localName = *q.LocalName
		}
		fmt.Fprintf(out, "%s is %s.\n", q.Date, formatNames(*q.HolidayName, localName))
		return
	}
	fmt.Fprintf(out, "%s is not a public holiday.\n", q.Date)
}
