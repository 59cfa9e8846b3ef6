package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/thirdlf03/world-holidays/internal/quiz"
)

func (s *SQLiteStore) SaveSession(ctx context.Context, session quiz.Session) error {
	if session.ID == "" {
		return errors.New("session id is required")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = session.CreatedAt
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO quiz_sessions (session_id, mode, state, score_correct, score_total, payload_json, created_at_unix, updated_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			mode = excluded.mode,
			state = excluded.state,
			score_correct = excluded.score_correct,
			score_total = excluded.score_total,
			payload_json = excluded.payload_json,
			updated_at_unix = excluded.updated_at_unix`,
		session.ID,
		string(session.Mode),
		string(session.State),
		session.Score.Correct,
		session.Score.Total,
		string(payload),
		session.CreatedAt.UnixNano(),
		session.UpdatedAt.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (quiz.Session, error) {
	var payload string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT payload_json FROM quiz_sessions WHERE session_id = ?`,
		sessionID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.Session{}, quiz.ErrSessionNotFound
		}
		return quiz.Session{}, err
	}

	var session quiz.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return quiz.Session{}, err
	}
	return session, nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM quiz_sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return quiz.ErrSessionNotFound
	}
	return nil
}

func (s *SQLiteStore) ListSessions(ctx context.Context, limit int) ([]quiz.Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT payload_json
		 FROM quiz_sessions
		 ORDER BY updated_at_unix DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]quiz.Session, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var session quiz.Session
		if err := json.Unmarshal([]byte(payload), &session); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ModeTotals sums scores across every stored session of each mode.
func (s *SQLiteStore) ModeTotals(ctx context.Context) (map[quiz.Mode]quiz.Score, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT mode, COALESCE(SUM(score_correct), 0), COALESCE(SUM(score_total), 0)
		 FROM quiz_sessions
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[quiz.Mode]quiz.Score)
	for rows.Next() {
		var (
			mode  string
			score quiz.Score
		)
		if err := rows.Scan(&mode, &score.Correct, &score.Total); err != nil {
			return nil, err
		}
		totals[quiz.Mode(mode)] = score
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}
