package dresssvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Macsarunrat/pink-rental/model"
	dressrepo "github.com/Macsarunrat/pink-rental/repository/dress"
)

var (
	ErrBadInput = errors.New("invalid payload")
	ErrNotFound = errors.New("dress not found")
)

type Service interface {
	Create(ctx context.Context, name string, costPrice, rentalPrice float64) (int64, error)
	Update(ctx context.Context, d *model.Dress) error
	SetImage(ctx context.Context, id int64, path string) error
	List(ctx context.Context) ([]model.Dress, error)
	Detail(ctx context.Context, id int64) (*model.Dress, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r dressrepo.Repo }

func New(r dressrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name string, costPrice, rentalPrice float64) (int64, error) {
	if name == "" || costPrice < 0 || rentalPrice < 0 {
		return 0, ErrBadInput
	}
	return s.r.Create(ctx, name, costPrice, rentalPrice)
}

func (s *service) Update(ctx context.Context, d *model.Dress) error {
	if d.Name == "" || d.CostPrice < 0 || d.RentalPrice < 0 {
		return ErrBadInput
	}
	if err := s.r.Update(ctx, d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *service) SetImage(ctx context.Context, id int64, path string) error {
	if err := s.r.SetImage(ctx, id, path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// List returns dresses with revenue and profit filled in. Revenue counts
// every rental of the dress regardless of status.
func (s *service) List(ctx context.Context) ([]model.Dress, error) {
	out, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Profit = out[i].TotalRevenue - out[i].CostPrice
	}
	return out, nil
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Dress, error) {
	d, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d.Profit = d.TotalRevenue - d.CostPrice
	return d, nil
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
