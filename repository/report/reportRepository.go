package reportrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Macsarunrat/pink-rental/model"
)

type UpcomingRow struct {
	RentalID     int64              `json:"rental_id"`
	CustomerName string             `json:"customer_name"`
	DressName    string             `json:"dress_name"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      time.Time          `json:"end_date"`
	Status       model.RentalStatus `json:"status"`
}

type Repo interface {
	// ListUpcoming returns non-returned rentals, soonest start first.
	ListUpcoming(ctx context.Context) ([]UpcomingRow, error)
	// SumFrom totals rentals whose start date is on or after from.
	SumFrom(ctx context.Context, from time.Time) (float64, error)
	// SumMonth totals rentals whose start date falls in the given month
	// number, any year.
	SumMonth(ctx context.Context, month int) (float64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) ListUpcoming(ctx context.Context) ([]UpcomingRow, error) {
	const q = `
	SELECT r.id, c.name, d.name, r.start_date, r.end_date, r.status
	FROM rentals r
	JOIN customers c ON c.id = r.customer_id
	JOIN dresses d ON d.id = r.dress_id
	WHERE r.status <> 'RETURNED'
	ORDER BY r.start_date, r.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UpcomingRow
	for rows.Next() {
		var u UpcomingRow
		if err := rows.Scan(&u.RentalID, &u.CustomerName, &u.DressName, &u.StartDate, &u.EndDate, &u.Status); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) SumFrom(ctx context.Context, from time.Time) (float64, error) {
	const q = `
	SELECT COALESCE(SUM(total_price), 0)
	FROM rentals
	WHERE start_date >= $1`
	var total float64
	err := r.db.QueryRowContext(ctx, q, from).Scan(&total)
	return total, err
}

func (r *repo) SumMonth(ctx context.Context, month int) (float64, error) {
	const q = `
	SELECT COALESCE(SUM(total_price), 0)
	FROM rentals
	WHERE EXTRACT(MONTH FROM start_date) = $1`
	var total float64
	err := r.db.QueryRowContext(ctx, q, month).Scan(&total)
	return total, err
}
