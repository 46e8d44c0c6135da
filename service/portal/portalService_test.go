package portalsvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Macsarunrat/pink-rental/model"
	portalrepo "github.com/Macsarunrat/pink-rental/repository/portal"
	accessorysvc "github.com/Macsarunrat/pink-rental/service/accessory"
	rentalsvc "github.com/Macsarunrat/pink-rental/service/rental"
)

type mockRepo struct {
	customerByPhoneFn func(ctx context.Context, phone string) (*model.Customer, error)
	createSessionFn   func(ctx context.Context, s *model.PortalSession) error
	getSessionFn      func(ctx context.Context, token string) (*model.PortalSession, error)
	deleteSessionFn   func(ctx context.Context, token string) error
}

var _ portalrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) CustomerByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	if m.customerByPhoneFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.customerByPhoneFn(ctx, phone)
}

func (m *mockRepo) CreateSession(ctx context.Context, s *model.PortalSession) error {
	if m.createSessionFn == nil {
		return nil
	}
	return m.createSessionFn(ctx, s)
}

func (m *mockRepo) GetSession(ctx context.Context, token string) (*model.PortalSession, error) {
	if m.getSessionFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.getSessionFn(ctx, token)
}

func (m *mockRepo) DeleteSession(ctx context.Context, token string) error {
	if m.deleteSessionFn == nil {
		return nil
	}
	return m.deleteSessionFn(ctx, token)
}

func (m *mockRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type mockRentals struct {
	getFn       func(ctx context.Context, id int64) (*model.Rental, error)
	blacklistFn func(ctx context.Context, start, end time.Time, excludeID int64) ([]int64, error)
}

var _ rentalsvc.Service = (*mockRentals)(nil)

func (m *mockRentals) Create(ctx context.Context, in rentalsvc.CreateInput) (*model.Rental, error) {
	return nil, nil
}
func (m *mockRentals) SelectAccessories(ctx context.Context, rentalID, customerID int64, accessoryIDs []int64) error {
	return nil
}
func (m *mockRentals) Blacklist(ctx context.Context, start, end time.Time, excludeID int64) ([]int64, error) {
	return m.blacklistFn(ctx, start, end, excludeID)
}
func (m *mockRentals) Conflicting(ctx context.Context, start, end time.Time, excludeID int64, wanted []int64) ([]int64, error) {
	return nil, nil
}
func (m *mockRentals) Get(ctx context.Context, id int64) (*model.Rental, error) {
	return m.getFn(ctx, id)
}
func (m *mockRentals) UpdateStatus(ctx context.Context, id int64, status model.RentalStatus) (*model.Rental, error) {
	return nil, nil
}
func (m *mockRentals) Delete(ctx context.Context, id int64) error { return nil }
func (m *mockRentals) HistoryFor(ctx context.Context, customerID int64) ([]rentalsvc.HistoryRow, error) {
	return nil, nil
}

type mockAccessories struct{ rows []model.Accessory }

var _ accessorysvc.Service = (*mockAccessories)(nil)

func (m *mockAccessories) Create(ctx context.Context, name string) (int64, error) { return 0, nil }
func (m *mockAccessories) SetImage(ctx context.Context, id int64, path string) error {
	return nil
}
func (m *mockAccessories) List(ctx context.Context) ([]model.Accessory, error) { return m.rows, nil }
func (m *mockAccessories) Delete(ctx context.Context, id int64) error          { return nil }

func fixedNow() time.Time {
	return time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
}

func TestLogin_UnknownPhone(t *testing.T) {
	svc := New(&mockRepo{}, nil, nil, fixedNow)

	_, _, err := svc.Login(context.Background(), "0812345678")
	require.ErrorIs(t, err, ErrUnknownPhone)

	_, _, err = svc.Login(context.Background(), "   ")
	require.ErrorIs(t, err, ErrUnknownPhone)
}

func TestLogin_Success(t *testing.T) {
	var created *model.PortalSession
	m := &mockRepo{
		customerByPhoneFn: func(ctx context.Context, phone string) (*model.Customer, error) {
			require.Equal(t, "0812345678", phone)
			return &model.Customer{ID: 5, Name: "Nok", Phone: phone}, nil
		},
		createSessionFn: func(ctx context.Context, s *model.PortalSession) error {
			created = s
			return nil
		},
	}
	svc := New(m, nil, nil, fixedNow)

	sess, cust, err := svc.Login(context.Background(), " 0812345678 ")
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, int64(5), sess.CustomerID)
	require.Equal(t, fixedNow().Add(7*24*time.Hour), sess.ExpiresAt)
	require.Equal(t, "Nok", cust.Name)
}

func TestResolve(t *testing.T) {
	m := &mockRepo{
		getSessionFn: func(ctx context.Context, token string) (*model.PortalSession, error) {
			return &model.PortalSession{
				Token:      token,
				CustomerID: 9,
				ExpiresAt:  fixedNow().Add(time.Hour),
			}, nil
		},
	}
	svc := New(m, nil, nil, fixedNow)

	cid, err := svc.Resolve(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, int64(9), cid)
}

func TestResolve_NoToken(t *testing.T) {
	svc := New(&mockRepo{}, nil, nil, fixedNow)
	_, err := svc.Resolve(context.Background(), "")
	require.ErrorIs(t, err, ErrNoSession)
}

func TestResolve_Expired(t *testing.T) {
	var deleted string
	m := &mockRepo{
		getSessionFn: func(ctx context.Context, token string) (*model.PortalSession, error) {
			return &model.PortalSession{
				Token:      token,
				CustomerID: 9,
				ExpiresAt:  fixedNow().Add(-time.Minute),
			}, nil
		},
		deleteSessionFn: func(ctx context.Context, token string) error {
			deleted = token
			return nil
		},
	}
	svc := New(m, nil, nil, fixedNow)

	_, err := svc.Resolve(context.Background(), "stale")
	require.ErrorIs(t, err, ErrSessionExpired)
	require.Equal(t, "stale", deleted)
}

func TestAccessoryOptions_NotOwner(t *testing.T) {
	rentals := &mockRentals{
		getFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			return &model.Rental{ID: id, CustomerID: 99}, nil
		},
	}
	svc := New(&mockRepo{}, rentals, &mockAccessories{}, fixedNow)

	_, err := svc.AccessoryOptions(context.Background(), 1, 5)
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestAccessoryOptions_Success(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)

	rentals := &mockRentals{
		getFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			return &model.Rental{ID: 42, CustomerID: 5, StartDate: start, EndDate: end}, nil
		},
		blacklistFn: func(ctx context.Context, s, e time.Time, excludeID int64) ([]int64, error) {
			// The rental's own claims never block its edit.
			require.Equal(t, int64(42), excludeID)
			require.Equal(t, start, s)
			require.Equal(t, end, e)
			return []int64{3}, nil
		},
	}
	acs := &mockAccessories{rows: []model.Accessory{{ID: 3, Name: "Tiara"}, {ID: 4, Name: "Belt"}}}
	svc := New(&mockRepo{}, rentals, acs, fixedNow)

	opts, err := svc.AccessoryOptions(context.Background(), 42, 5)
	require.NoError(t, err)
	require.Equal(t, int64(42), opts.Rental.ID)
	require.Len(t, opts.Accessories, 2)
	require.Equal(t, []int64{3}, opts.Blacklist)
	require.Equal(t, 2, opts.MaxSelect)
}
