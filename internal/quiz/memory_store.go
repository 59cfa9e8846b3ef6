package quiz

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps sessions for the lifetime of the process.
type MemoryStore struct {
	sessions sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SaveSession(_ context.Context, session Session) error {
	m.sessions.Store(session.ID, session)
	return nil
}

func (m *MemoryStore) GetSession(_ context.Context, sessionID string) (Session, error) {
	stored, ok := m.sessions.Load(sessionID)
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	session, ok := stored.(Session)
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (m *MemoryStore) DeleteSession(_ context.Context, sessionID string) error {
	if _, loaded := m.sessions.LoadAndDelete(sessionID); !loaded {
		return ErrSessionNotFound
	}
	return nil
}

func (m *MemoryStore) ListSessions(_ context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	sessions := make([]Session, 0)
	m.sessions.Range(func(_, value any) bool {
		if session, ok := value.(Session); ok {
			sessions = append(sessions, session)
		}
		return true
	})

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	if limit < len(sessions) {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (m *MemoryStore) ModeTotals(_ context.Context) (map[Mode]Score, error) {
	totals := make(map[Mode]Score)
	m.sessions.Range(func(_, value any) bool {
		session, ok := value.(Session)
		if !ok {
			return true
		}
		total := totals[session.Mode]
		total.Correct += session.Score.Correct
		total.Total += session.Score.Total
		totals[session.Mode] = total
		return true
	})
	return totals, nil
}
