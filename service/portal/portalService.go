package portalsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Macsarunrat/pink-rental/model"
	portalrepo "github.com/Macsarunrat/pink-rental/repository/portal"
	accessorysvc "github.com/Macsarunrat/pink-rental/service/accessory"
	rentalsvc "github.com/Macsarunrat/pink-rental/service/rental"
)

var (
	ErrUnknownPhone   = errors.New("unknown phone")
	ErrSessionExpired = errors.New("session expired")
	ErrNoSession      = errors.New("no session")
	ErrNotOwner       = errors.New("not owner")
	ErrNotFound       = errors.New("rental not found")
)

const sessionTTL = 7 * 24 * time.Hour

// Options is what the accessory picker needs: the rental, every accessory,
// and the ids blocked for the rental's dates.
type Options struct {
	Rental      *model.Rental     `json:"rental"`
	Accessories []model.Accessory `json:"accessories"`
	Blacklist   []int64           `json:"blacklist"`
	MaxSelect   int               `json:"max_select"`
}

type Service interface {
	// Login exchanges a known phone number for a portal session token.
	Login(ctx context.Context, phone string) (*model.PortalSession, *model.Customer, error)
	// Resolve maps a session token to its customer id.
	Resolve(ctx context.Context, token string) (int64, error)
	Logout(ctx context.Context, token string) error

	MyRentals(ctx context.Context, customerID int64) ([]rentalsvc.HistoryRow, error)
	// AccessoryOptions returns the selection constraints for an owned rental.
	AccessoryOptions(ctx context.Context, rentalID, customerID int64) (*Options, error)
}

type service struct {
	r           portalrepo.Repo
	rentals     rentalsvc.Service
	accessories accessorysvc.Service
	now         func() time.Time
}

func New(r portalrepo.Repo, rentals rentalsvc.Service, accessories accessorysvc.Service, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{r: r, rentals: rentals, accessories: accessories, now: now}
}

func (s *service) Login(ctx context.Context, phone string) (*model.PortalSession, *model.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, nil, ErrUnknownPhone
	}

	c, err := s.r.CustomerByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrUnknownPhone
		}
		return nil, nil, err
	}

	// Opportunistic purge; stale sessions also die on Resolve.
	if _, err := s.r.DeleteExpired(ctx, s.now()); err != nil {
		return nil, nil, err
	}

	sess := &model.PortalSession{
		Token:      uuid.NewString(),
		CustomerID: c.ID,
		ExpiresAt:  s.now().Add(sessionTTL),
	}
	if err := s.r.CreateSession(ctx, sess); err != nil {
		return nil, nil, err
	}
	return sess, c, nil
}

func (s *service) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrNoSession
	}
	sess, err := s.r.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoSession
		}
		return 0, err
	}
	if !sess.ExpiresAt.After(s.now()) {
		_ = s.r.DeleteSession(ctx, token)
		return 0, ErrSessionExpired
	}
	return sess.CustomerID, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	return s.r.DeleteSession(ctx, token)
}

func (s *service) MyRentals(ctx context.Context, customerID int64) ([]rentalsvc.HistoryRow, error) {
	return s.rentals.HistoryFor(ctx, customerID)
}

func (s *service) AccessoryOptions(ctx context.Context, rentalID, customerID int64) (*Options, error) {
	r, err := s.rentals.Get(ctx, rentalID)
	if err != nil {
		if rentalsvc.Code(err) == rentalsvc.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if r.CustomerID != customerID {
		return nil, ErrNotOwner
	}

	all, err := s.accessories.List(ctx)
	if err != nil {
		return nil, err
	}
	// The rental's dates are fixed; its own claims never block its edit.
	blocked, err := s.rentals.Blacklist(ctx, r.StartDate, r.EndDate, r.ID)
	if err != nil {
		return nil, err
	}

	return &Options{
		Rental:      r,
		Accessories: all,
		Blacklist:   blocked,
		MaxSelect:   rentalsvc.MaxAccessories,
	}, nil
}
