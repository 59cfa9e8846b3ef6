package quiz

import (
	"context"
	"errors"
)

var (
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrInvalidMode     = errors.New("invalid quiz mode")
	ErrNoQuestion      = errors.New("no question available")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrWrongMode       = errors.New("answer does not match quiz mode")
	ErrInvalidOption   = errors.New("option index out of range")
)

type SessionStore interface {
	SaveSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, sessionID string) (Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ListSessions(ctx context.Context, limit int) ([]Session, error)
	ModeTotals(ctx context.Context) (map[Mode]Score, error)
}
