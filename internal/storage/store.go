package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stable keys for the kv table.
const (
	KeyProfile          = "user_profile"
	KeyCompletedTasks   = "completed_tasks"
	KeyQuestProgress    = "quest_progress"
	KeyPausedTask       = "paused_task"
	KeyAnonymousID      = "anonymous_id"
	KeyAccountCreatedAt = "account_created_at"
)

// resetKeys are wiped by ResetAll. The anonymous id is deliberately excluded
// so community identity survives a data wipe.
var resetKeys = []string{
	KeyProfile,
	KeyCompletedTasks,
	KeyQuestProgress,
	KeyPausedTask,
	KeyAccountCreatedAt,
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the local persistence gateway: a JSON key-value surface over
// SQLite plus the append-only cleaning history table. Inside WithTx, Store
// is backed by the transaction instead of the raw DB.
type Store struct {
	db *sql.DB // nil inside a transaction
	q  dbtx
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WithTx runs fn against a transaction-scoped Store. The kv writes performed
// by a task completion commit together or not at all.
func (s *Store) WithTx(ctx context.Context, fn func(txs *Store) error) error {
	if s.db == nil {
		return fmt.Errorf("nested transaction not supported")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&Store{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

func (s *Store) getRaw(ctx context.Context, key string) (string, bool, error) {
	row := s.q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) setRaw(ctx context.Context, key, value string) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (s *Store) remove(ctx context.Context, key string) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) getJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, ok, err := s.getRaw(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("kv unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv marshal %s: %w", key, err)
	}
	return s.setRaw(ctx, key, string(data))
}

// LoadProfile returns (nil, nil) when no profile has been saved yet.
func (s *Store) LoadProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	ok, err := s.getJSON(ctx, KeyProfile, &p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) SaveProfile(ctx context.Context, p *Profile) error {
	return s.setJSON(ctx, KeyProfile, p)
}

// LoadCompletedTasks returns an empty (non-nil) map when nothing is stored.
func (s *Store) LoadCompletedTasks(ctx context.Context) (map[string]time.Time, error) {
	m := map[string]time.Time{}
	if _, err := s.getJSON(ctx, KeyCompletedTasks, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) SaveCompletedTasks(ctx context.Context, m map[string]time.Time) error {
	return s.setJSON(ctx, KeyCompletedTasks, m)
}

func (s *Store) LoadQuestProgress(ctx context.Context) (*QuestProgress, error) {
	var qp QuestProgress
	ok, err := s.getJSON(ctx, KeyQuestProgress, &qp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &qp, nil
}

func (s *Store) SaveQuestProgress(ctx context.Context, qp *QuestProgress) error {
	return s.setJSON(ctx, KeyQuestProgress, qp)
}

func (s *Store) ClearQuestProgress(ctx context.Context) error {
	return s.remove(ctx, KeyQuestProgress)
}

func (s *Store) LoadPausedTask(ctx context.Context) (*PausedTask, error) {
	var pt PausedTask
	ok, err := s.getJSON(ctx, KeyPausedTask, &pt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &pt, nil
}

func (s *Store) SavePausedTask(ctx context.Context, pt *PausedTask) error {
	return s.setJSON(ctx, KeyPausedTask, pt)
}

func (s *Store) ClearPausedTask(ctx context.Context) error {
	return s.remove(ctx, KeyPausedTask)
}

// GetOrCreateAnonymousID returns the stable anonymous community identity,
// minting one on first use.
func (s *Store) GetOrCreateAnonymousID(ctx context.Context) (string, error) {
	id, ok, err := s.getRaw(ctx, KeyAnonymousID)
	if err != nil {
		return "", err
	}
	if ok && id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err := s.setRaw(ctx, KeyAnonymousID, id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) LoadAccountCreatedAt(ctx context.Context) (*time.Time, error) {
	raw, ok, err := s.getRaw(ctx, KeyAccountCreatedAt)
	if err != nil || !ok {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("parse account created at: %w", err)
	}
	return &t, nil
}

func (s *Store) SaveAccountCreatedAt(ctx context.Context, t time.Time) error {
	return s.setRaw(ctx, KeyAccountCreatedAt, t.Format(time.RFC3339Nano))
}

// ResetAll wipes profile, completions, checkpoints, and history. The
// anonymous id is kept.
func (s *Store) ResetAll(ctx context.Context) error {
	return s.WithTx(ctx, func(txs *Store) error {
		for _, key := range resetKeys {
			if err := txs.remove(ctx, key); err != nil {
				return err
			}
		}
		if _, err := txs.q.ExecContext(ctx, `DELETE FROM cleaning_sessions`); err != nil {
			return fmt.Errorf("reset history: %w", err)
		}
		return nil
	})
}
