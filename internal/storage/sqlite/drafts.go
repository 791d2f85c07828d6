package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/wispgen/internal/models"
	"github.com/mmynk/wispgen/internal/storage"
)

// CreateDraft starts a new empty wizard draft.
func (s *SQLiteStore) CreateDraft(ctx context.Context) (*storage.Draft, error) {
	now := s.timestamp()
	draft := &storage.Draft{
		ID:        uuid.New().String(),
		Steps:     map[int]models.Answers{},
		CreatedAt: fromTimestamp(now),
		UpdatedAt: fromTimestamp(now),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO drafts (id, created_at, updated_at) VALUES (?, ?, ?)",
		draft.ID, now, now,
	)
	if err != nil {
		return nil, persistErr("insert draft", err)
	}
	return draft, nil
}

// GetDraft loads a draft with all of its step answers.
func (s *SQLiteStore) GetDraft(ctx context.Context, id string) (*storage.Draft, error) {
	draft := &storage.Draft{ID: id, Steps: map[int]models.Answers{}}
	var created, updated int64
	err := s.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM drafts WHERE id = ?", id,
	).Scan(&created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("draft", id)
	}
	if err != nil {
		return nil, persistErr("get draft", err)
	}
	draft.CreatedAt = fromTimestamp(created)
	draft.UpdatedAt = fromTimestamp(updated)

	rows, err := s.db.QueryContext(ctx,
		"SELECT step, answers FROM draft_steps WHERE draft_id = ? ORDER BY step", id,
	)
	if err != nil {
		return nil, persistErr("get draft steps", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			step    int
			encoded string
			answers models.Answers
		)
		if err := rows.Scan(&step, &encoded); err != nil {
			return nil, persistErr("scan draft step", err)
		}
		if err := json.Unmarshal([]byte(encoded), &answers); err != nil {
			return nil, fmt.Errorf("failed to decode draft %s step %d: %w", id, step, err)
		}
		draft.Steps[step] = answers
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("iterate draft steps", err)
	}

	return draft, nil
}

// SaveDraftStep replaces the answers of one step of a draft.
func (s *SQLiteStore) SaveDraftStep(ctx context.Context, id string, step int, answers models.Answers) error {
	encoded, err := encodeAnswers(answers)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("begin transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "UPDATE drafts SET updated_at = ? WHERE id = ?", s.timestamp(), id)
	if err != nil {
		return persistErr("touch draft", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return persistErr("touch draft", err)
	} else if n == 0 {
		return notFound("draft", id)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO draft_steps (draft_id, step, answers) VALUES (?, ?, ?)
		 ON CONFLICT (draft_id, step) DO UPDATE SET answers = excluded.answers`,
		id, step, encoded,
	)
	if err != nil {
		return persistErr("save draft step", err)
	}

	if err := tx.Commit(); err != nil {
		return persistErr("commit transaction", err)
	}
	return nil
}

// DeleteDraft discards a draft and its steps.
func (s *SQLiteStore) DeleteDraft(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id); err != nil {
		return persistErr("delete draft", err)
	}
	return nil
}

// FinalizeDraft inserts wisp and removes the draft atomically.
func (s *SQLiteStore) FinalizeDraft(ctx context.Context, draftID string, wisp *models.Wisp) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("begin transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", draftID)
	if err != nil {
		return persistErr("delete draft", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return persistErr("delete draft", err)
	} else if n == 0 {
		return notFound("draft", draftID)
	}

	created := *wisp
	if err := s.insertWisp(ctx, tx, &created); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return persistErr("commit transaction", err)
	}
	*wisp = created
	return nil
}

// PruneDrafts deletes drafts that have not been updated since before.
func (s *SQLiteStore) PruneDrafts(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE updated_at < ?", before.UTC().UnixNano())
	if err != nil {
		return 0, persistErr("prune drafts", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, persistErr("prune drafts", err)
	}
	return n, nil
}
