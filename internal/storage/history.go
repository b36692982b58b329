package storage

import (
	"context"
	"fmt"
)

func (s *Store) AppendCleaningSession(ctx context.Context, cs CleaningSession) (int64, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO cleaning_sessions (task_id, task_title, day, actual_minutes, completed_at)
		VALUES (?, ?, ?, ?, ?)
	`, cs.TaskID, cs.TaskTitle, cs.Date, cs.ActualMinutes, cs.CompletedAt)
	if err != nil {
		return 0, fmt.Errorf("history insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history last insert id: %w", err)
	}
	return id, nil
}

// ListCleaningSessions returns the full history, newest first. A limit of 0
// means no limit.
func (s *Store) ListCleaningSessions(ctx context.Context, limit int) ([]CleaningSession, error) {
	query := `
		SELECT id, task_id, task_title, day, actual_minutes, completed_at
		FROM cleaning_sessions
		ORDER BY completed_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	defer rows.Close()

	var out []CleaningSession
	for rows.Next() {
		var cs CleaningSession
		if err := rows.Scan(&cs.ID, &cs.TaskID, &cs.TaskTitle, &cs.Date, &cs.ActualMinutes, &cs.CompletedAt); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}
	return out, nil
}

func (s *Store) CountCleaningSessions(ctx context.Context) (int, error) {
	row := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM cleaning_sessions`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("history count: %w", err)
	}
	return n, nil
}
