// repository/portal/repo.go
package portalrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Macsarunrat/pink-rental/model"
)

type Repo interface {
	CustomerByPhone(ctx context.Context, phone string) (*model.Customer, error)
	CreateSession(ctx context.Context, s *model.PortalSession) error
	GetSession(ctx context.Context, token string) (*model.PortalSession, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) CustomerByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	const q = `
SELECT id, name, phone, line_id, created_at
FROM customers
WHERE phone = $1`
	var c model.Customer
	if err := r.db.QueryRowContext(ctx, q, phone).Scan(&c.ID, &c.Name, &c.Phone, &c.LineID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) CreateSession(ctx context.Context, s *model.PortalSession) error {
	const q = `
INSERT INTO portal_sessions (token, customer_id, expires_at)
VALUES ($1,$2,$3)
RETURNING created_at`
	return r.db.QueryRowContext(ctx, q, s.Token, s.CustomerID, s.ExpiresAt).Scan(&s.CreatedAt)
}

func (r *repo) GetSession(ctx context.Context, token string) (*model.PortalSession, error) {
	const q = `
SELECT token, customer_id, expires_at, created_at
FROM portal_sessions
WHERE token = $1`
	var s model.PortalSession
	if err := r.db.QueryRowContext(ctx, q, token).Scan(&s.Token, &s.CustomerID, &s.ExpiresAt, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) DeleteSession(ctx context.Context, token string) error {
	const q = `DELETE FROM portal_sessions WHERE token = $1`
	_, err := r.db.ExecContext(ctx, q, token)
	return err
}

func (r *repo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `DELETE FROM portal_sessions WHERE expires_at <= $1`
	res, err := r.db.ExecContext(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
