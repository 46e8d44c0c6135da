// repository/rental/repo.go
package rental

import (
	"context"
	"database/sql"
	"time"

	"github.com/Macsarunrat/pink-rental/model"
)

type AccessoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Candidate is a non-returned rental competing for accessories in some
// date window, with enough context to build a conflict message.
type Candidate struct {
	RentalID     int64
	CustomerName string
	StartDate    time.Time
	EndDate      time.Time
	Accessories  []AccessoryRef
}

type HistoryRow struct {
	RentalID   int64              `json:"rental_id"`
	DressID    int64              `json:"dress_id"`
	DressName  string             `json:"dress_name"`
	StartDate  time.Time          `json:"start_date"`
	EndDate    time.Time          `json:"end_date"`
	TotalPrice float64            `json:"total_price"`
	Status     model.RentalStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
}

type Repo interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// Referenced entities
	CustomerName(ctx context.Context, customerID int64) (string, error)
	DressPrice(ctx context.Context, dressID int64) (float64, error)
	AccessoriesExist(ctx context.Context, ids []int64) (bool, error)

	// Conflict candidates: non-RETURNED rentals intersecting [start, end]
	// inclusively, excluding excludeID when > 0. Lock variant takes
	// FOR UPDATE row locks and must run inside WithTx.
	ListOverlapping(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error)
	LockOverlapping(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error)

	// Ledger writes
	InsertRental(ctx context.Context, r *model.Rental) (int64, error)
	AttachAccessories(ctx context.Context, rentalID int64, ids []int64) error
	ReplaceAccessories(ctx context.Context, rentalID int64, ids []int64) error

	GetRental(ctx context.Context, id int64) (*model.Rental, error)
	GetRentalForUpdate(ctx context.Context, id int64) (*model.Rental, error)
	UpdateStatus(ctx context.Context, id int64, status model.RentalStatus) (*model.Rental, error)
	Delete(ctx context.Context, id int64) error

	ListByCustomer(ctx context.Context, customerID int64) ([]HistoryRow, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db, fn)
}

// Referenced entities

func (r *repo) CustomerName(ctx context.Context, customerID int64) (string, error) {
	const q = `
			SELECT name
			FROM customers
			WHERE id = $1`
	var name string
	err := r.q(ctx).QueryRowContext(ctx, q, customerID).Scan(&name)
	return name, err
}

func (r *repo) DressPrice(ctx context.Context, dressID int64) (float64, error) {
	const q = `
			SELECT rental_price
			FROM dresses
			WHERE id = $1`
	var price float64
	err := r.q(ctx).QueryRowContext(ctx, q, dressID).Scan(&price)
	return price, err
}

func (r *repo) AccessoriesExist(ctx context.Context, ids []int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM accessories WHERE id = $1)`
	for _, id := range ids {
		var ok bool
		if err := r.q(ctx).QueryRowContext(ctx, q, id).Scan(&ok); err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Conflict candidates

const overlapWhere = `
	r.status <> 'RETURNED'
	AND r.start_date <= $2
	AND r.end_date >= $1
	AND ($3 = 0 OR r.id <> $3)`

func (r *repo) ListOverlapping(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error) {
	return r.listOverlapping(ctx, start, end, excludeID, false)
}

// LockOverlapping locks the candidate rental rows so a concurrent booking
// for the same window serializes behind this transaction.
func (r *repo) LockOverlapping(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error) {
	return r.listOverlapping(ctx, start, end, excludeID, true)
}

func (r *repo) listOverlapping(ctx context.Context, start, end time.Time, excludeID int64, lock bool) ([]Candidate, error) {
	q := `
		SELECT r.id, c.name, r.start_date, r.end_date
		FROM rentals r
		JOIN customers c ON c.id = r.customer_id
		WHERE ` + overlapWhere + `
		ORDER BY r.id`
	if lock {
		q += `
		FOR UPDATE OF r`
	}

	rows, err := r.q(ctx).QueryContext(ctx, q, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	byID := map[int64]int{}
	for rows.Next() {
		var cand Candidate
		if err := rows.Scan(&cand.RentalID, &cand.CustomerName, &cand.StartDate, &cand.EndDate); err != nil {
			return nil, err
		}
		byID[cand.RentalID] = len(out)
		out = append(out, cand)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	const accQ = `
		SELECT ra.rental_id, a.id, a.name
		FROM rental_accessories ra
		JOIN rentals r ON r.id = ra.rental_id
		JOIN accessories a ON a.id = ra.accessory_id
		WHERE ` + overlapWhere + `
		ORDER BY ra.rental_id, a.id`
	accRows, err := r.q(ctx).QueryContext(ctx, accQ, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	defer accRows.Close()

	for accRows.Next() {
		var rentalID int64
		var ref AccessoryRef
		if err := accRows.Scan(&rentalID, &ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		if i, ok := byID[rentalID]; ok {
			out[i].Accessories = append(out[i].Accessories, ref)
		}
	}
	return out, accRows.Err()
}

// Ledger writes

func (r *repo) InsertRental(ctx context.Context, m *model.Rental) (int64, error) {
	const q = `
		INSERT INTO rentals (customer_id, dress_id, start_date, end_date, status, total_price, price_override, deposit, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	var id int64
	err := r.q(ctx).QueryRowContext(ctx, q,
		m.CustomerID, m.DressID, m.StartDate, m.EndDate,
		m.Status, m.TotalPrice, m.PriceOverride, m.Deposit, m.Note,
	).Scan(&id)
	return id, err
}

func (r *repo) AttachAccessories(ctx context.Context, rentalID int64, ids []int64) error {
	const q = `INSERT INTO rental_accessories (rental_id, accessory_id) VALUES ($1, $2)`
	for _, id := range ids {
		if _, err := r.q(ctx).ExecContext(ctx, q, rentalID, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) ReplaceAccessories(ctx context.Context, rentalID int64, ids []int64) error {
	const del = `DELETE FROM rental_accessories WHERE rental_id = $1`
	if _, err := r.q(ctx).ExecContext(ctx, del, rentalID); err != nil {
		return err
	}
	return r.AttachAccessories(ctx, rentalID, ids)
}

const rentalCols = `id, customer_id, dress_id, start_date, end_date, status, total_price, price_override, deposit, note, created_at`

func (r *repo) GetRental(ctx context.Context, id int64) (*model.Rental, error) {
	const q = `SELECT ` + rentalCols + ` FROM rentals WHERE id = $1`
	return r.getRental(ctx, q, id)
}

func (r *repo) GetRentalForUpdate(ctx context.Context, id int64) (*model.Rental, error) {
	const q = `SELECT ` + rentalCols + ` FROM rentals WHERE id = $1 FOR UPDATE`
	return r.getRental(ctx, q, id)
}

func (r *repo) getRental(ctx context.Context, q string, id int64) (*model.Rental, error) {
	var m model.Rental
	err := r.q(ctx).QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.CustomerID, &m.DressID, &m.StartDate, &m.EndDate,
		&m.Status, &m.TotalPrice, &m.PriceOverride, &m.Deposit, &m.Note, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := r.loadAccessoryIDs(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) loadAccessoryIDs(ctx context.Context, m *model.Rental) error {
	const q = `SELECT accessory_id FROM rental_accessories WHERE rental_id = $1 ORDER BY accessory_id`
	rows, err := r.q(ctx).QueryContext(ctx, q, m.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		m.AccessoryIDs = append(m.AccessoryIDs, id)
	}
	return rows.Err()
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.RentalStatus) (*model.Rental, error) {
	const q = `
		UPDATE rentals
		SET status = $2
		WHERE id = $1
		RETURNING ` + rentalCols
	var m model.Rental
	err := r.q(ctx).QueryRowContext(ctx, q, id, status).Scan(
		&m.ID, &m.CustomerID, &m.DressID, &m.StartDate, &m.EndDate,
		&m.Status, &m.TotalPrice, &m.PriceOverride, &m.Deposit, &m.Note, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := r.loadAccessoryIDs(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	// Associations go with the row via ON DELETE CASCADE.
	const q = `DELETE FROM rentals WHERE id = $1`
	res, err := r.q(ctx).ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ListByCustomer(ctx context.Context, customerID int64) ([]HistoryRow, error) {
	const q = `
			SELECT
			r.id          AS rental_id,
			r.dress_id    AS dress_id,
			d.name        AS dress_name,
			r.start_date  AS start_date,
			r.end_date    AS end_date,
			r.total_price AS total_price,
			r.status      AS status,
			r.created_at  AS created_at
			FROM rentals r
			JOIN dresses d ON d.id = r.dress_id
			WHERE r.customer_id = $1
			ORDER BY r.start_date DESC, r.id DESC`
	rows, err := r.q(ctx).QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(
			&h.RentalID, &h.DressID, &h.DressName,
			&h.StartDate, &h.EndDate, &h.TotalPrice, &h.Status, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
