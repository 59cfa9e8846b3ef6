package quiz

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type QuestionGenerator interface {
	TrueFalse(ctx context.Context) (*TrueFalseQuestion, error)
	Guess(ctx context.Context) (*GuessQuestion, error)
}

// Service owns quiz sessions: it generates questions, applies answers and
// persists every transition through the SessionStore.
type Service struct {
	store     SessionStore
	generator QuestionGenerator
	now       func() time.Time
	newID     func() string

	locks sync.Map
}

func NewService(store SessionStore, generator QuestionGenerator) *Service {
	return &Service{
		store:     store,
		generator: generator,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

func (s *Service) StartSession(ctx context.Context, mode Mode) (Session, error) {
	if mode != ModeTrueFalse && mode != ModeGuess {
		return Session{}, ErrInvalidMode
	}

	now := s.now()
	session := Session{
		ID:        s.newID(),
		Mode:      mode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.loadQuestion(ctx, &session); err != nil {
		return Session{}, err
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *Service) GetSession(ctx context.Context, sessionID string) (Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Session{}, ErrSessionNotFound
	}
	return s.store.GetSession(ctx, sessionID)
}

func (s *Service) AnswerTrueFalse(ctx context.Context, sessionID string, answer bool) (Session, bool, error) {
	var correct bool
	session, err := s.update(ctx, sessionID, func(session *Session) error {
		var err error
		correct, err = session.answerTrueFalse(answer)
		return err
	})
	return session, correct, err
}

func (s *Service) AnswerGuess(ctx context.Context, sessionID string, selectedIndex int) (Session, bool, error) {
	var correct bool
	session, err := s.update(ctx, sessionID, func(session *Session) error {
		var err error
		correct, err = session.answerGuess(selectedIndex)
		return err
	})
	return session, correct, err
}

// Next replaces the current question and keeps the score.
func (s *Service) Next(ctx context.Context, sessionID string) (Session, error) {
	return s.update(ctx, sessionID, func(session *Session) error {
		return s.loadQuestion(ctx, session)
	})
}

// Reset zeroes the score and starts over with a fresh question.
func (s *Service) Reset(ctx context.Context, sessionID string) (Session, error) {
	return s.update(ctx, sessionID, func(session *Session) error {
		if err := s.loadQuestion(ctx, session); err != nil {
			return err
		}
		session.Score = Score{}
		return nil
	})
}

func (s *Service) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	return s.store.ListSessions(ctx, limit)
}

func (s *Service) ModeTotals(ctx context.Context) (map[Mode]Score, error) {
	return s.store.ModeTotals(ctx)
}

func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()

	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	s.locks.Delete(sessionID)
	return nil
}

func (s *Service) update(ctx context.Context, sessionID string, apply func(*Session) error) (Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Session{}, ErrSessionNotFound
	}

	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}

	// Work on a copy so a failed transition leaves the stored session intact.
	next := session
	if err := apply(&next); err != nil {
		return session, err
	}
	next.UpdatedAt = s.now()

	if err := s.store.SaveSession(ctx, next); err != nil {
		return session, err
	}
	return next, nil
}

func (s *Service) loadQuestion(ctx context.Context, session *Session) error {
	if s.generator == nil {
		return errors.New("question generator is not configured")
	}

	switch session.Mode {
	case ModeTrueFalse:
		question, err := s.generator.TrueFalse(ctx)
		if err != nil {
			return err
		}
		session.setTrueFalse(question)
	case ModeGuess:
		question, err := s.generator.Guess(ctx)
		if err != nil {
			return err
		}
		session.setGuess(question)
	default:
		return ErrInvalidMode
	}
	return nil
}

// lock serializes transitions per session; different sessions never block
// each other.
func (s *Service) lock(sessionID string) func() {
	value, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
