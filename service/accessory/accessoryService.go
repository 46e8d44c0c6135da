package accessorysvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Macsarunrat/pink-rental/model"
	accessoryrepo "github.com/Macsarunrat/pink-rental/repository/accessory"
)

var (
	ErrBadInput = errors.New("invalid payload")
	ErrNotFound = errors.New("accessory not found")
)

type Service interface {
	Create(ctx context.Context, name string) (int64, error)
	SetImage(ctx context.Context, id int64, path string) error
	List(ctx context.Context) ([]model.Accessory, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r accessoryrepo.Repo }

func New(r accessoryrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, ErrBadInput
	}
	return s.r.Create(ctx, name)
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

func (s *service) List(ctx context.Context) ([]model.Accessory, error) { return s.r.List(ctx) }

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
