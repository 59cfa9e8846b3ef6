package sqlite

import (
	"context"
)

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	// The question payload is stored as JSON; score columns are duplicated so
	// they can be queried without decoding.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS quiz_sessions (
			session_id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			state TEXT NOT NULL,
			score_correct INTEGER NOT NULL DEFAULT 0,
			score_total INTEGER NOT NULL DEFAULT 0,
			payload_json TEXT NOT NULL,
			created_at_unix INTEGER NOT NULL,
			updated_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_sessions_updated_at ON quiz_sessions(updated_at_unix DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_sessions_mode ON quiz_sessions(mode);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
