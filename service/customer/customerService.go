package customersvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Macsarunrat/pink-rental/model"
	customerrepo "github.com/Macsarunrat/pink-rental/repository/customer"
	rentalsvc "github.com/Macsarunrat/pink-rental/service/rental"
)

var (
	ErrBadInput   = errors.New("bad input")
	ErrPhoneTaken = errors.New("phone already registered")
	ErrNotFound   = errors.New("customer not found")
)

type HistoryRow = rentalsvc.HistoryRow

type Service interface {
	Create(ctx context.Context, req model.CreateCustomerReq) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Detail(ctx context.Context, id int64) (*model.Customer, error)
	// History lists the customer's rentals, newest start date first.
	History(ctx context.Context, id int64) (*model.Customer, []HistoryRow, error)
	// Delete removes the customer and, by cascade, every rental they hold.
	Delete(ctx context.Context, id int64) error
}

type service struct {
	r       customerrepo.Repo
	rentals rentalsvc.Service
}

func New(r customerrepo.Repo, rentals rentalsvc.Service) Service {
	return &service{r: r, rentals: rentals}
}

func (s *service) Create(ctx context.Context, req model.CreateCustomerReq) (*model.Customer, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		return nil, ErrBadInput
	}

	c := &model.Customer{Name: name, Phone: phone, LineID: req.LineID}
	if err := s.r.Create(ctx, c); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context) ([]model.Customer, error) {
	return s.r.List(ctx)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) History(ctx context.Context, id int64) (*model.Customer, []HistoryRow, error) {
	c, err := s.Detail(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.rentals.HistoryFor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return c, rows, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
