package quiz

import (
	"strings"
	"time"
)

type Mode string

const (
	ModeTrueFalse Mode = "true_false"
	ModeGuess     Mode = "guess"
)

// ParseMode accepts the URL spellings ("true-false", "guess") as well as the
// stored constants.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true_false", "true-false", "truefalse", "tf":
		return ModeTrueFalse, nil
	case "guess":
		return ModeGuess, nil
	default:
		return "", ErrInvalidMode
	}
}

type State string

const (
	StateAwaitingAnswer State = "awaiting_answer"
	StateAnswered       State = "answered"
	StateUnavailable    State = "unavailable"
)

// Session holds one player's progress through a quiz mode. Every transition
// goes through the methods below; callers persist the result.
type Session struct {
	ID    string `json:"id"`
	Mode  Mode   `json:"mode"`
	State State  `json:"state"`
	Score Score  `json:"score"`

	TrueFalse *TrueFalseQuestion `json:"true_false,omitempty"`
	Guess     *GuessQuestion     `json:"guess,omitempty"`

	SelectedAnswer *bool `json:"selected_answer,omitempty"`
	SelectedIndex  *int  `json:"selected_index,omitempty"`
	LastCorrect    *bool `json:"last_correct,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) setTrueFalse(question *TrueFalseQuestion) {
	s.clearQuestion()
	s.TrueFalse = question
	if question == nil {
		s.State = StateUnavailable
		return
	}
	s.State = StateAwaitingAnswer
}

func (s *Session) setGuess(question *GuessQuestion) {
	s.clearQuestion()
	s.Guess = question
	if question == nil {
		s.State = StateUnavailable
		return
	}
	s.State = StateAwaitingAnswer
}

func (s *Session) clearQuestion() {
	s.TrueFalse = nil
	s.Guess = nil
	s.SelectedAnswer = nil
	s.SelectedIndex = nil
	s.LastCorrect = nil
}

func (s *Session) answerTrueFalse(answer bool) (bool, error) {
	if s.Mode != ModeTrueFalse {
		return false, ErrWrongMode
	}
	if err := s.requireAwaiting(); err != nil {
		return false, err
	}
	if s.TrueFalse == nil {
		return false, ErrNoQuestion
	}

	correct, score := ProcessTrueFalseAnswer(*s.TrueFalse, answer, s.Score)
	s.Score = score
	s.SelectedAnswer = &answer
	s.LastCorrect = &correct
	s.State = StateAnswered
	return correct, nil
}

func (s *Session) answerGuess(index int) (bool, error) {
	if s.Mode != ModeGuess {
		return false, ErrWrongMode
	}
	if err := s.requireAwaiting(); err != nil {
		return false, err
	}
	if s.Guess == nil {
		return false, ErrNoQuestion
	}
	if index < 0 || index >= len(s.Guess.Options) {
		return false, ErrInvalidOption
	}

	correct, score := ProcessGuessAnswer(*s.Guess, index, s.Score)
	s.Score = score
	s.SelectedIndex = &index
	s.LastCorrect = &correct
	s.State = StateAnswered
	return correct, nil
}

func (s *Session) requireAwaiting() error {
	switch s.State {
	case StateAwaitingAnswer:
		return nil
	case StateAnswered:
		return ErrAlreadyAnswered
	default:
		return ErrNoQuestion
	}
}
