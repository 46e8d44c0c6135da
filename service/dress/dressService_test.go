package dresssvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Macsarunrat/pink-rental/model"
	dressrepo "github.com/Macsarunrat/pink-rental/repository/dress"
)

type mockRepo struct {
	createFn func(ctx context.Context, name string, costPrice, rentalPrice float64) (int64, error)
	listFn   func(ctx context.Context) ([]model.Dress, error)
	detailFn func(ctx context.Context, id int64) (*model.Dress, error)
}

var _ dressrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, name string, costPrice, rentalPrice float64) (int64, error) {
	return m.createFn(ctx, name, costPrice, rentalPrice)
}
func (m *mockRepo) Update(ctx context.Context, d *model.Dress) error          { return nil }
func (m *mockRepo) SetImage(ctx context.Context, id int64, path string) error { return nil }
func (m *mockRepo) List(ctx context.Context) ([]model.Dress, error)           { return m.listFn(ctx) }
func (m *mockRepo) Detail(ctx context.Context, id int64) (*model.Dress, error) {
	return m.detailFn(ctx, id)
}
func (m *mockRepo) Delete(ctx context.Context, id int64) error { return nil }

func TestCreate_Validation(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Create(context.Background(), "", 100, 200)
	require.ErrorIs(t, err, ErrBadInput)

	_, err = svc.Create(context.Background(), "Blush Gown", -1, 200)
	require.ErrorIs(t, err, ErrBadInput)

	_, err = svc.Create(context.Background(), "Blush Gown", 100, -1)
	require.ErrorIs(t, err, ErrBadInput)
}

func TestList_FillsProfit(t *testing.T) {
	m := &mockRepo{
		listFn: func(ctx context.Context) ([]model.Dress, error) {
			return []model.Dress{
				{ID: 1, Name: "Blush Gown", CostPrice: 3000, TotalRevenue: 7500},
				{ID: 2, Name: "Silk Slip", CostPrice: 2000, TotalRevenue: 0},
			}, nil
		},
	}
	svc := New(m)

	out, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4500.0, out[0].Profit)
	// A dress with no rentals shows its cost as negative profit.
	require.Equal(t, -2000.0, out[1].Profit)
}

func TestDetail_NotFound(t *testing.T) {
	m := &mockRepo{
		detailFn: func(ctx context.Context, id int64) (*model.Dress, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := New(m)

	_, err := svc.Detail(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}
