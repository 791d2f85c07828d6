package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/wispgen/internal/models"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateWisp persists a new plan to the database.
func (s *SQLiteStore) CreateWisp(ctx context.Context, wisp *models.Wisp) error {
	return s.insertWisp(ctx, s.db, wisp)
}

func (s *SQLiteStore) insertWisp(ctx context.Context, db execer, wisp *models.Wisp) error {
	if wisp.CompanyName == "" {
		return fmt.Errorf("company name is required")
	}

	answers, err := encodeAnswers(wisp.Answers)
	if err != nil {
		return err
	}

	// Generate ID if not set
	if wisp.ID == "" {
		wisp.ID = uuid.New().String()
	}
	now := s.timestamp()

	_, err = db.ExecContext(ctx,
		"INSERT INTO wisps (id, company_name, answers, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		wisp.ID, wisp.CompanyName, answers, now, now,
	)
	if err != nil {
		return persistErr("insert wisp", err)
	}

	wisp.CreatedAt = fromTimestamp(now)
	wisp.UpdatedAt = wisp.CreatedAt
	return nil
}

// GetWisp retrieves a plan by ID.
func (s *SQLiteStore) GetWisp(ctx context.Context, id string) (*models.Wisp, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, company_name, answers, created_at, updated_at FROM wisps WHERE id = ?",
		id,
	)
	wisp, err := scanWisp(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("wisp", id)
	}
	if err != nil {
		return nil, persistErr("get wisp", err)
	}
	return wisp, nil
}

// ListWisps returns all plans ordered by updated_at descending.
func (s *SQLiteStore) ListWisps(ctx context.Context) ([]*models.Wisp, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, company_name, answers, created_at, updated_at FROM wisps ORDER BY updated_at DESC, seq ASC",
	)
	if err != nil {
		return nil, persistErr("list wisps", err)
	}
	defer rows.Close()

	var wisps []*models.Wisp
	for rows.Next() {
		wisp, err := scanWisp(rows)
		if err != nil {
			return nil, persistErr("scan wisp", err)
		}
		wisps = append(wisps, wisp)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("iterate wisps", err)
	}

	return wisps, nil
}

// UpdateWispAnswers replaces the answers of a plan. The company name follows
// the new answers when they carry one.
func (s *SQLiteStore) UpdateWispAnswers(ctx context.Context, id string, answers models.Answers) (*models.Wisp, error) {
	encoded, err := encodeAnswers(answers)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	res, err := s.db.ExecContext(ctx,
		`UPDATE wisps
		 SET answers = ?, updated_at = ?, company_name = COALESCE(NULLIF(?, ''), company_name)
		 WHERE id = ?`,
		encoded, now, answers.String("company_name"), id,
	)
	if err != nil {
		return nil, persistErr("update wisp", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, persistErr("update wisp", err)
	} else if n == 0 {
		return nil, notFound("wisp", id)
	}

	return s.GetWisp(ctx, id)
}

// DeleteWisp removes a plan by ID.
func (s *SQLiteStore) DeleteWisp(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM wisps WHERE id = ?", id)
	if err != nil {
		return persistErr("delete wisp", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistErr("delete wisp", err)
	}
	if n == 0 {
		return notFound("wisp", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWisp(row scanner) (*models.Wisp, error) {
	var (
		wisp             models.Wisp
		answers          string
		created, updated int64
	)
	if err := row.Scan(&wisp.ID, &wisp.CompanyName, &answers, &created, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(answers), &wisp.Answers); err != nil {
		return nil, fmt.Errorf("failed to decode answers for wisp %s: %w", wisp.ID, err)
	}
	wisp.CreatedAt = fromTimestamp(created)
	wisp.UpdatedAt = fromTimestamp(updated)
	return &wisp, nil
}

func encodeAnswers(answers models.Answers) (string, error) {
	if answers == nil {
		answers = models.Answers{}
	}
	data, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("failed to encode answers: %w", err)
	}
	return string(data), nil
}
