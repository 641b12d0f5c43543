package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ticketlane/eventwizard/internal/store"
	"github.com/ticketlane/eventwizard/internal/wizard"
)

type SessionsRepo struct {
	pool *pgxpool.Pool
}

func NewSessionsRepo(pool *pgxpool.Pool) *SessionsRepo {
	return &SessionsRepo{
		pool: pool,
	}
}

// EnsureSchema creates the sessions table on startup if it is missing. The
// form aggregate is stored as one jsonb blob: sessions are always loaded and
// written whole, so there is nothing to gain from relational slot rows.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS wizard_sessions (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			event_id TEXT NOT NULL DEFAULT '',
			step INT NOT NULL,
			form JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure wizard_sessions schema: %w", err)
	}

	return nil
}

func (r *SessionsRepo) Create(ctx context.Context, s *wizard.Session) error {
	form, err := json.Marshal(s.Form)
	if err != nil {
		return fmt.Errorf("marshal form: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO wizard_sessions(id, user_id, mode, event_id, step, form, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.UserID, string(s.Mode), s.EventID, int(s.Step), form, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

func (r *SessionsRepo) Get(ctx context.Context, id string) (*wizard.Session, error) {
	var (
		s    wizard.Session
		mode string
		step int
		form []byte
	)

	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, mode, event_id, step, form, created_at, updated_at
		 FROM wizard_sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.UserID, &mode, &s.EventID, &step, &form, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	s.Mode = wizard.Mode(mode)
	s.Step = wizard.Step(step)

	if err := json.Unmarshal(form, &s.Form); err != nil {
		return nil, fmt.Errorf("unmarshal form: %w", err)
	}

	return &s, nil
}

func (r *SessionsRepo) Save(ctx context.Context, s *wizard.Session) error {
	form, err := json.Marshal(s.Form)
	if err != nil {
		return fmt.Errorf("marshal form: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE wizard_sessions SET step = $2, form = $3, updated_at = $4 WHERE id = $1`,
		s.ID, int(s.Step), form, s.UpdatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *SessionsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM wizard_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}
