package dressrepo

import (
	"context"
	"database/sql"

	"github.com/Macsarunrat/pink-rental/model"
)

type Repo interface {
	Create(ctx context.Context, name string, costPrice, rentalPrice float64) (int64, error)
	Update(ctx context.Context, d *model.Dress) error
	SetImage(ctx context.Context, id int64, path string) error
	List(ctx context.Context) ([]model.Dress, error)
	Detail(ctx context.Context, id int64) (*model.Dress, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, name string, costPrice, rentalPrice float64) (int64, error) {
	const q = `
INSERT INTO dresses (name, cost_price, rental_price)
VALUES ($1,$2,$3)
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, name, costPrice, rentalPrice).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) Update(ctx context.Context, d *model.Dress) error {
	const q = `
UPDATE dresses
SET name = $2, cost_price = $3, rental_price = $4, is_available = $5
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, d.ID, d.Name, d.CostPrice, d.RentalPrice, d.IsAvailable)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) SetImage(ctx context.Context, id int64, path string) error {
	const q = `UPDATE dresses SET image_path = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, path)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns dresses with revenue over all their rentals; profit is the
// caller's subtraction of cost price.
func (r *repo) List(ctx context.Context) ([]model.Dress, error) {
	const q = `
	SELECT d.id, d.name, d.image_path, d.cost_price, d.rental_price, d.is_available,
		COALESCE(SUM(r.total_price), 0) AS total_revenue
	FROM dresses d
	LEFT JOIN rentals r ON r.dress_id = d.id
	GROUP BY d.id
	ORDER BY d.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Dress
	for rows.Next() {
		var d model.Dress
		if err := rows.Scan(&d.ID, &d.Name, &d.ImagePath, &d.CostPrice, &d.RentalPrice, &d.IsAvailable, &d.TotalRevenue); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Dress, error) {
	const q = `
SELECT d.id, d.name, d.image_path, d.cost_price, d.rental_price, d.is_available,
       COALESCE(SUM(r.total_price), 0) AS total_revenue
FROM dresses d
LEFT JOIN rentals r ON r.dress_id = d.id
WHERE d.id = $1
GROUP BY d.id`
	var d model.Dress
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Name, &d.ImagePath, &d.CostPrice, &d.RentalPrice, &d.IsAvailable, &d.TotalRevenue); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM dresses WHERE id = $1`
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
