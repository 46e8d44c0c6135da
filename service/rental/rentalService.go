package rental

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Macsarunrat/pink-rental/model"
	rrepo "github.com/Macsarunrat/pink-rental/repository/rental"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrConflict    ErrCode = "CONFLICT"
	ErrNotOwner    ErrCode = "NOT_OWNER"
	ErrCapExceeded ErrCode = "CAP_EXCEEDED"
	ErrBadStatus   ErrCode = "BAD_STATUS"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode) error { return codedError{code: c} }

func conflictErr(rep *ConflictReport) error {
	return codedError{code: ErrConflict, msg: rep.Message()}
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// MaxAccessories is the per-rental cap on the self-service flow.
const MaxAccessories = 2

type CreateInput struct {
	CustomerID    int64
	DressID       int64
	AccessoryIDs  []int64
	StartDate     time.Time
	EndDate       time.Time
	PriceOverride *float64
	Deposit       float64
	Note          *string
}

// HistoryRow = repository shape
type HistoryRow = rrepo.HistoryRow

type Repo interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	CustomerName(ctx context.Context, customerID int64) (string, error)
	DressPrice(ctx context.Context, dressID int64) (float64, error)
	AccessoriesExist(ctx context.Context, ids []int64) (bool, error)

	ListOverlapping(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error)
	LockOverlapping(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error)

	InsertRental(ctx context.Context, r *model.Rental) (int64, error)
	AttachAccessories(ctx context.Context, rentalID int64, ids []int64) error
	ReplaceAccessories(ctx context.Context, rentalID int64, ids []int64) error

	GetRental(ctx context.Context, id int64) (*model.Rental, error)
	GetRentalForUpdate(ctx context.Context, id int64) (*model.Rental, error)
	UpdateStatus(ctx context.Context, id int64, status model.RentalStatus) (*model.Rental, error)
	Delete(ctx context.Context, id int64) error

	ListByCustomer(ctx context.Context, customerID int64) ([]HistoryRow, error)
}

type Service interface {
	// Create: admin booking. Rejects with a CONFLICT message when any
	// requested accessory is claimed by an overlapping rental; nothing is
	// written on rejection.
	Create(ctx context.Context, in CreateInput) (*model.Rental, error)

	// SelectAccessories: customer self-service set-replace on an owned
	// rental, capped at MaxAccessories, conflict-checked in the same
	// transaction as the write.
	SelectAccessories(ctx context.Context, rentalID, customerID int64, accessoryIDs []int64) error

	// Blacklist: accessory ids unavailable for the range, for the
	// selection UI.
	Blacklist(ctx context.Context, start, end time.Time, excludeID int64) ([]int64, error)

	// Conflicting narrows the blacklist to a requested accessory set, for
	// probing a booking before submitting it.
	Conflicting(ctx context.Context, start, end time.Time, excludeID int64, wanted []int64) ([]int64, error)

	Get(ctx context.Context, id int64) (*model.Rental, error)
	UpdateStatus(ctx context.Context, id int64, status model.RentalStatus) (*model.Rental, error)
	Delete(ctx context.Context, id int64) error
	HistoryFor(ctx context.Context, customerID int64) ([]HistoryRow, error)
}

// ----- Service implementation -----

type service struct {
	r Repo
}

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Rental, error) {
	// Resolve references before opening the transaction.
	if _, err := s.r.CustomerName(ctx, in.CustomerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	price, err := s.r.DressPrice(ctx, in.DressID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	ok, err := s.r.AccessoriesExist(ctx, in.AccessoryIDs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrNotFound)
	}

	// Flat per-rental price; duration does not factor in.
	total := price
	if in.PriceOverride != nil {
		total = *in.PriceOverride
	}

	m := &model.Rental{
		CustomerID:    in.CustomerID,
		DressID:       in.DressID,
		AccessoryIDs:  in.AccessoryIDs,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Status:        model.RentalBooked,
		TotalPrice:    total,
		PriceOverride: in.PriceOverride,
		Deposit:       in.Deposit,
		Note:          in.Note,
	}

	// Conflict check and insert share one serializable transaction; two
	// concurrent bookings for the same window cannot both miss each
	// other's insert, one of them aborts and retries.
	err = s.r.WithTx(ctx, func(txCtx context.Context) error {
		others, err := s.r.LockOverlapping(txCtx, in.StartDate, in.EndDate, 0)
		if err != nil {
			return err
		}
		rng := DateRange{Start: in.StartDate, End: in.EndDate}
		if rep := FirstConflict(rng, in.AccessoryIDs, others); rep != nil {
			return conflictErr(rep)
		}

		id, err := s.r.InsertRental(txCtx, m)
		if err != nil {
			return err
		}
		m.ID = id
		return s.r.AttachAccessories(txCtx, id, in.AccessoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) SelectAccessories(ctx context.Context, rentalID, customerID int64, accessoryIDs []int64) error {
	if len(accessoryIDs) > MaxAccessories {
		return makeErr(ErrCapExceeded)
	}

	return s.r.WithTx(ctx, func(txCtx context.Context) error {
		m, err := s.r.GetRentalForUpdate(txCtx, rentalID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		if m.CustomerID != customerID {
			return makeErr(ErrNotOwner)
		}

		ok, err := s.r.AccessoriesExist(txCtx, accessoryIDs)
		if err != nil {
			return err
		}
		if !ok {
			return makeErr(ErrNotFound)
		}

		// Re-check against the ledger rather than trusting the blacklist
		// the portal rendered earlier. The rental's own row never blocks
		// its own edit.
		others, err := s.r.LockOverlapping(txCtx, m.StartDate, m.EndDate, m.ID)
		if err != nil {
			return err
		}
		rng := DateRange{Start: m.StartDate, End: m.EndDate}
		if rep := FirstConflict(rng, accessoryIDs, others); rep != nil {
			return conflictErr(rep)
		}

		return s.r.ReplaceAccessories(txCtx, m.ID, accessoryIDs)
	})
}

func (s *service) Blacklist(ctx context.Context, start, end time.Time, excludeID int64) ([]int64, error) {
	others, err := s.r.ListOverlapping(ctx, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	return Blacklist(DateRange{Start: start, End: end}, others), nil
}

func (s *service) Conflicting(ctx context.Context, start, end time.Time, excludeID int64, wanted []int64) ([]int64, error) {
	others, err := s.r.ListOverlapping(ctx, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	return Conflicts(DateRange{Start: start, End: end}, wanted, others), nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Rental, error) {
	m, err := s.r.GetRental(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status model.RentalStatus) (*model.Rental, error) {
	if !model.ValidStatus(status) {
		return nil, makeErr(ErrBadStatus)
	}
	m, err := s.r.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *service) HistoryFor(ctx context.Context, customerID int64) ([]HistoryRow, error) {
	return s.r.ListByCustomer(ctx, customerID)
}
