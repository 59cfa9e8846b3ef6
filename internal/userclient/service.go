package userclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/thirdlf03/world-holidays/internal/quiz"
)

const (
	defaultServer      = "http://127.0.0.1:8080"
	defaultHTTPTimeout = 10 * time.Second
)

type Config struct {
	ServerURL   string
	Username    string
	Password    string
	HTTPTimeout time.Duration
	// Interactive enables the "> " prompt; callers set it when stdin is a
	// terminal.
	Interactive bool
	// PromptCredentials is asked once when a guarded request is rejected.
	PromptCredentials func(reader *bufio.Reader, out io.Writer) (username, password string, err error)
}

type session struct {
	client    *HTTPClient
	reader    *bufio.Reader
	out       io.Writer
	serverURL string
	prompt    func(reader *bufio.Reader, out io.Writer) (string, string, error)

	search    searchView
	favorites favoritesView
	mode      quiz.Mode
	quizzes   map[quiz.Mode]*quizView
}

func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	serverURL := strings.TrimSpace(cfg.ServerURL)
	if serverURL == "" {
		serverURL = defaultServer
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := NewHTTPClient(serverURL, &http.Client{Timeout: timeout})
	if strings.TrimSpace(cfg.Username) != "" {
		client.SetCredentials(strings.TrimSpace(cfg.Username), cfg.Password)
	}

	s := &session{
		client:    client,
		reader:    bufio.NewReader(in),
		out:       out,
		serverURL: serverURL,
		prompt:    cfg.PromptCredentials,
		mode:      quiz.ModeTrueFalse,
		quizzes: map[quiz.Mode]*quizView{
			quiz.ModeTrueFalse: {mode: quiz.ModeTrueFalse},
			quiz.ModeGuess:     {mode: quiz.ModeGuess},
		},
	}

	fmt.Fprintf(out, "holiday-user-service\nserver=%s\n\n", serverURL)
	printHelp(out)

	for {
		if cfg.Interactive {
			fmt.Fprint(out, "\n> ")
		}
		line, err := s.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(line) != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		command := strings.ToLower(args[0])
		if command == "exit" || command == "quit" {
			return nil
		}

		if err := s.dispatch(ctx, command, args[1:]); err != nil {
			fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
		}
	}
}

func (s *session) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		printHelp(s.out)
		return nil
	case "countries":
		return s.runCountries(ctx, args)
	case "search":
		return s.runSearch(ctx, args)
	case "upcoming":
		return s.runUpcoming(ctx, args)
	case "fav":
		return s.runAddFavorites(ctx, args)
	case "favorites", "favs":
		return s.runFavorites(ctx)
	case "grouped":
		return s.runGrouped(ctx)
	case "remove", "rm":
		return s.runRemoveFavorites(ctx, args)
	case "clear":
		return s.runClearFavorites(ctx)
	case "tf":
		return s.runSwitchQuiz(ctx, quiz.ModeTrueFalse)
	case "guess":
		return s.runSwitchQuiz(ctx, quiz.ModeGuess)
	case "answer", "a":
		return s.runAnswer(ctx, args)
	case "next":
		return s.runQuizTransition(ctx, s.client.NextQuestion)
	case "reset":
		return s.runQuizTransition(ctx, s.client.ResetScore)
	case "score":
		return s.runScore(ctx)
	default:
		fmt.Fprintln(s.out, "unknown command. type 'help' for usage.")
		return nil
	}
}

func (s *session) runCountries(ctx context.Context, args []string) error {
	options, err := s.client.Countries(ctx)
	if err != nil {
		return err
	}
	renderCountries(s.out, options, strings.Join(args, " "))
	return nil
}

func (s *session) runSearch(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: search <year> <country_code>")
		return nil
	}
	year, err := parseYearArg(args[0])
	if err != nil {
		return err
	}

	payload, err := s.client.Search(ctx, year, strings.ToUpper(args[1]))
	if err != nil {
		return err
	}
	s.search.show(payload)
	renderSearch(s.out, &s.search)
	return nil
}

func (s *session) runUpcoming(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: upcoming <country_code>")
		return nil
	}
	countryCode := strings.ToUpper(args[0])
	holidays, err := s.client.NextHolidays(ctx, countryCode)
	if err != nil {
		return err
	}
	renderHolidays(s.out, countryCode, holidays)
	return nil
}

func (s *session) runAddFavorites(ctx context.Context, args []string) error {
	if !s.search.loaded() {
		fmt.Fprintln(s.out, "search for holidays first: search <year> <country_code>")
		return nil
	}
	indexes, err := parseRowNumbers(args, len(s.search.rows))
	if err != nil {
		return err
	}

	result, err := s.client.AddFavorites(ctx, s.search.selected(indexes))
	if err != nil {
		return err
	}
	s.search.markFavorites(indexes)
	s.favorites.loaded = false
	renderSearch(s.out, &s.search)
	fmt.Fprintf(s.out, "Added %d favorite(s); %d in total.\n", result.Added, result.Total)
	return nil
}

func (s *session) runFavorites(ctx context.Context) error {
	payload, err := s.client.Favorites(ctx)
	if err != nil {
		return err
	}
	s.favorites.show(payload)
	renderFavorites(s.out, &s.favorites)
	return nil
}

func (s *session) runGrouped(ctx context.Context) error {
	groups, err := s.client.GroupedFavorites(ctx)
	if err != nil {
		return err
	}
	renderGroups(s.out, groups)
	return nil
}

func (s *session) runRemoveFavorites(ctx context.Context, args []string) error {
	if !s.favorites.loaded {
		fmt.Fprintln(s.out, "list favorites first: favorites")
		return nil
	}
	indexes, err := parseRowNumbers(args, len(s.favorites.list))
	if err != nil {
		return err
	}
	selected := s.favorites.selected(indexes)

	var result removeFavoritesResponse
	err = s.withCredentials(func() error {
		var callErr error
		result, callErr = s.client.RemoveFavorites(ctx, selected)
		return callErr
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Removed %d favorite(s); %d left.\n", result.Removed, result.Total)
	return s.runFavorites(ctx)
}

func (s *session) runClearFavorites(ctx context.Context) error {
	confirmed, err := promptYesNo(s.reader, s.out, "remove all favorites? (yes/no): ")
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	if err := s.withCredentials(func() error { return s.client.ClearFavorites(ctx) }); err != nil {
		return err
	}
	s.favorites = favoritesView{}
	fmt.Fprintln(s.out, "Favorites cleared.")
	return nil
}

func (s *session) runSwitchQuiz(ctx context.Context, mode quiz.Mode) error {
	s.mode = mode
	view := s.quizzes[mode]
	if view.phase() == phaseIdle {
		item, err := s.client.StartSession(ctx, mode)
		if err != nil {
			return err
		}
		view.show(item)
	}
	renderQuiz(s.out, view)
	return nil
}

func (s *session) runAnswer(ctx context.Context, args []string) error {
	view := s.quizzes[s.mode]
	switch view.phase() {
	case phaseIdle:
		fmt.Fprintln(s.out, "start a quiz first: tf or guess")
		return nil
	case phaseAnswered:
		fmt.Fprintln(s.out, "already answered. type 'next' for another question.")
		return nil
	case phaseUnavailable:
		fmt.Fprintln(s.out, "no question to answer. type 'next' to try again.")
		return nil
	}
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: answer <yes|no|number>")
		return nil
	}

	var (
		result answerResponse
		err    error
	)
	if s.mode == quiz.ModeTrueFalse {
		answer, parseErr := parseTrueFalseAnswer(args[0])
		if parseErr != nil {
			return parseErr
		}
		result, err = s.client.AnswerTrueFalse(ctx, view.session.ID, answer)
	} else {
		optionCount := 0
		if view.session.Guess != nil {
			optionCount = len(view.session.Guess.Options)
		}
		index, parseErr := parseGuessAnswer(args[0], optionCount)
		if parseErr != nil {
			return parseErr
		}
		result, err = s.client.AnswerGuess(ctx, view.session.ID, index)
	}
	if err != nil {
		return s.handleSessionError(view, err)
	}

	view.show(result.Session)
	renderQuiz(s.out, view)
	return nil
}

func (s *session) runQuizTransition(ctx context.Context, transition func(context.Context, string) (sessionItem, error)) error {
	view := s.quizzes[s.mode]
	if view.phase() == phaseIdle {
		return s.runSwitchQuiz(ctx, s.mode)
	}

	item, err := transition(ctx, view.session.ID)
	if err != nil {
		return s.handleSessionError(view, err)
	}
	view.show(item)
	renderQuiz(s.out, view)
	return nil
}

func (s *session) runScore(ctx context.Context) error {
	for _, mode := range []quiz.Mode{quiz.ModeTrueFalse, quiz.ModeGuess} {
		view := s.quizzes[mode]
		if view.phase() == phaseIdle {
			continue
		}
		score := view.session.Score
		fmt.Fprintf(s.out, "%s (this session): %d/%d (%s%%)\n", modeLabel(mode), score.Correct, score.Total, view.session.Accuracy)
	}

	stats, err := s.client.QuizStats(ctx)
	if err != nil {
		return err
	}
	for _, mode := range []quiz.Mode{quiz.ModeTrueFalse, quiz.ModeGuess} {
		item := stats.Modes[mode]
		fmt.Fprintf(s.out, "%s (all players): %d/%d (%s%%)\n", modeLabel(mode), item.Correct, item.Total, accuracyOrZero(item.Accuracy))
	}
	return nil
}

// handleSessionError drops a session the server no longer knows so the next
// quiz command starts a fresh one.
func (s *session) handleSessionError(view *quizView, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		view.expire()
		return errors.New("quiz session expired. type 'tf' or 'guess' to start again")
	}
	return err
}

func (s *session) withCredentials(call func() error) error {
	err := call()
	if !isUnauthorized(err) || s.prompt == nil {
		return err
	}

	username, password, promptErr := s.prompt(s.reader, s.out)
	if promptErr != nil {
		return promptErr
	}
	s.client.SetCredentials(username, password)
	return call()
}

func accuracyOrZero(value string) string {
	if value == "" {
		return "0.0"
	}
	return value
}
