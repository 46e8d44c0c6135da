package accessoryrepo

import (
	"context"
	"database/sql"

	"github.com/Macsarunrat/pink-rental/model"
)

type Repo interface {
	Create(ctx context.Context, name string) (int64, error)
	SetImage(ctx context.Context, id int64, path string) error
	List(ctx context.Context) ([]model.Accessory, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, name string) (int64, error) {
	const q = `
INSERT INTO accessories (name)
VALUES ($1)
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) SetImage(ctx context.Context, id int64, path string) error {
	const q = `UPDATE accessories SET image_path = $2 WHERE id = $1`
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

func (r *repo) List(ctx context.Context) ([]model.Accessory, error) {
	const q = `
	SELECT id, name, image_path
	FROM accessories
	ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Accessory
	for rows.Next() {
		var a model.Accessory
		if err := rows.Scan(&a.ID, &a.Name, &a.ImagePath); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM accessories WHERE id = $1`
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
