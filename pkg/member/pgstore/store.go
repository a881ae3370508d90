package pgstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/memberauth/pkg/member"
	"github.com/dmitrymomot/memberauth/pkg/pg"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations holds the goose migrations for the members table.
var Migrations fs.FS = mustSub(migrationFiles, "migrations")

func mustSub(fsys embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

const selectColumns = `id, password_hash, name, phone_number, is_worker, is_admin, session_token, session_expiry`

// Store is a PostgreSQL backed member store.
type Store struct {
	pool *pgxpool.Pool
}

var _ member.ConditionalStore = (*Store)(nil)

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) FindByID(ctx context.Context, id string) (*member.Member, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM members WHERE id = $1`, id)
	return scanMember(row)
}

func (s *Store) FindByIDAndSessionToken(ctx context.Context, id, token string) (*member.Member, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM members WHERE id = $1 AND session_token = $2`,
		id, token,
	)
	return scanMember(row)
}

func (s *Store) UpdateSession(ctx context.Context, id string, token *string, expiry *time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE members SET session_token = $2, session_expiry = $3 WHERE id = $1`,
		id, token, utcPtr(expiry),
	)
	if err != nil {
		return fmt.Errorf("update member session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return member.ErrNotFound
	}
	return nil
}

func (s *Store) ClearSessionIfToken(ctx context.Context, id, token string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE members SET session_token = NULL, session_expiry = NULL WHERE id = $1 AND session_token = $2`,
		id, token,
	)
	if err != nil {
		return fmt.Errorf("clear member session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return member.ErrNotFound
	}
	return nil
}

// Upsert inserts m or replaces the existing row with the same id.
func (s *Store) Upsert(ctx context.Context, m *member.Member) error {
	if m == nil || m.ID == "" {
		return member.ErrInvalidMember
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO members (`+selectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			name = EXCLUDED.name,
			phone_number = EXCLUDED.phone_number,
			is_worker = EXCLUDED.is_worker,
			is_admin = EXCLUDED.is_admin,
			session_token = EXCLUDED.session_token,
			session_expiry = EXCLUDED.session_expiry
	`, m.ID, m.PasswordHash, m.Name, m.Phone, m.IsWorker, m.IsAdmin, m.SessionToken, utcPtr(m.SessionExpiry))
	if err != nil {
		return fmt.Errorf("upsert member: %w", err)
	}
	return nil
}

// Delete removes the member row. Missing rows are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}

func scanMember(row pgx.Row) (*member.Member, error) {
	var m member.Member
	err := row.Scan(
		&m.ID,
		&m.PasswordHash,
		&m.Name,
		&m.Phone,
		&m.IsWorker,
		&m.IsAdmin,
		&m.SessionToken,
		&m.SessionExpiry,
	)
	if pg.IsNotFoundError(err) {
		return nil, member.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan member: %w", err)
	}
	m.SessionExpiry = utcPtr(m.SessionExpiry)
	return &m, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
