package customerrepo

import (
	"context"
	"database/sql"

	"github.com/Macsarunrat/pink-rental/model"
)

type Repo interface {
	Create(ctx context.Context, c *model.Customer) error
	List(ctx context.Context) ([]model.Customer, error)
	Detail(ctx context.Context, id int64) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, c *model.Customer) error {
	const q = `
INSERT INTO customers (name, phone, line_id)
VALUES ($1,$2,$3)
RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, c.Name, c.Phone, c.LineID).Scan(&c.ID, &c.CreatedAt)
}

func (r *repo) List(ctx context.Context) ([]model.Customer, error) {
	const q = `
	SELECT id, name, phone, line_id, created_at
	FROM customers
	ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.LineID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Customer, error) {
	const q = `
SELECT id, name, phone, line_id, created_at
FROM customers
WHERE id = $1`
	var c model.Customer
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Phone, &c.LineID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	// Rentals and their accessory associations cascade with the customer.
	const q = `DELETE FROM customers WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
