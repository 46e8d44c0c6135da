package rental

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Macsarunrat/pink-rental/model"
)

type mockRepo struct {
	customerNameFn     func(ctx context.Context, id int64) (string, error)
	dressPriceFn       func(ctx context.Context, id int64) (float64, error)
	accessoriesExistFn func(ctx context.Context, ids []int64) (bool, error)

	listOverlappingFn func(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error)
	lockOverlappingFn func(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error)

	insertFn         func(ctx context.Context, r *model.Rental) (int64, error)
	attachFn         func(ctx context.Context, rentalID int64, ids []int64) error
	replaceFn        func(ctx context.Context, rentalID int64, ids []int64) error
	getFn            func(ctx context.Context, id int64) (*model.Rental, error)
	getForUpdateFn   func(ctx context.Context, id int64) (*model.Rental, error)
	updateStatusFn   func(ctx context.Context, id int64, st model.RentalStatus) (*model.Rental, error)
	deleteFn         func(ctx context.Context, id int64) error
	listByCustomerFn func(ctx context.Context, customerID int64) ([]HistoryRow, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *mockRepo) CustomerName(ctx context.Context, id int64) (string, error) {
	if m.customerNameFn == nil {
		return "Customer", nil
	}
	return m.customerNameFn(ctx, id)
}

func (m *mockRepo) DressPrice(ctx context.Context, id int64) (float64, error) {
	if m.dressPriceFn == nil {
		return 1500, nil
	}
	return m.dressPriceFn(ctx, id)
}

func (m *mockRepo) AccessoriesExist(ctx context.Context, ids []int64) (bool, error) {
	if m.accessoriesExistFn == nil {
		return true, nil
	}
	return m.accessoriesExistFn(ctx, ids)
}

func (m *mockRepo) ListOverlapping(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error) {
	if m.listOverlappingFn == nil {
		return nil, nil
	}
	return m.listOverlappingFn(ctx, start, end, excludeID)
}

func (m *mockRepo) LockOverlapping(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error) {
	if m.lockOverlappingFn == nil {
		return nil, nil
	}
	return m.lockOverlappingFn(ctx, start, end, excludeID)
}

func (m *mockRepo) InsertRental(ctx context.Context, r *model.Rental) (int64, error) {
	if m.insertFn == nil {
		return 1, nil
	}
	return m.insertFn(ctx, r)
}

func (m *mockRepo) AttachAccessories(ctx context.Context, rentalID int64, ids []int64) error {
	if m.attachFn == nil {
		return nil
	}
	return m.attachFn(ctx, rentalID, ids)
}

func (m *mockRepo) ReplaceAccessories(ctx context.Context, rentalID int64, ids []int64) error {
	if m.replaceFn == nil {
		return nil
	}
	return m.replaceFn(ctx, rentalID, ids)
}

func (m *mockRepo) GetRental(ctx context.Context, id int64) (*model.Rental, error) {
	return m.getFn(ctx, id)
}

func (m *mockRepo) GetRentalForUpdate(ctx context.Context, id int64) (*model.Rental, error) {
	return m.getForUpdateFn(ctx, id)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, st model.RentalStatus) (*model.Rental, error) {
	return m.updateStatusFn(ctx, id, st)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }

func (m *mockRepo) ListByCustomer(ctx context.Context, customerID int64) ([]HistoryRow, error) {
	return m.listByCustomerFn(ctx, customerID)
}

// --- tests ---

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()

	var inserted *model.Rental
	var attachedTo int64
	m := &mockRepo{
		insertFn: func(ctx context.Context, r *model.Rental) (int64, error) {
			inserted = r
			return 77, nil
		},
		attachFn: func(ctx context.Context, rentalID int64, ids []int64) error {
			attachedTo = rentalID
			require.Equal(t, []int64{3, 5}, ids)
			return nil
		},
	}
	svc := New(m)

	out, err := svc.Create(ctx, CreateInput{
		CustomerID:   1,
		DressID:      2,
		AccessoryIDs: []int64{3, 5},
		StartDate:    day(1, 10),
		EndDate:      day(1, 15),
		Deposit:      500,
	})
	require.NoError(t, err)
	require.Equal(t, int64(77), out.ID)
	require.Equal(t, model.RentalBooked, out.Status)
	require.Equal(t, 1500.0, out.TotalPrice) // flat dress price, days ignored
	require.Equal(t, int64(77), attachedTo)
	require.NotNil(t, inserted)
}

func TestCreate_PriceOverride(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	override := 999.0
	out, err := svc.Create(ctx, CreateInput{
		CustomerID:    1,
		DressID:       2,
		StartDate:     day(1, 10),
		EndDate:       day(1, 15),
		PriceOverride: &override,
	})
	require.NoError(t, err)
	require.Equal(t, 999.0, out.TotalPrice)
}

func TestCreate_Conflict_NothingWritten(t *testing.T) {
	ctx := context.Background()

	m := &mockRepo{
		lockOverlappingFn: func(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error) {
			require.Equal(t, int64(0), excludeID)
			return candidates(), nil
		},
		insertFn: func(ctx context.Context, r *model.Rental) (int64, error) {
			t.Fatal("insert must not run on conflict")
			return 0, nil
		},
	}
	svc := New(m)

	_, err := svc.Create(ctx, CreateInput{
		CustomerID:   1,
		DressID:      2,
		AccessoryIDs: []int64{3},
		StartDate:    day(1, 10),
		EndDate:      day(1, 15),
	})
	require.Error(t, err)
	require.Equal(t, ErrConflict, Code(err))
	require.Contains(t, err.Error(), "Pearl Necklace")
	require.Contains(t, err.Error(), "Nok")
	require.Contains(t, err.Error(), "12/01 - 20/01")
}

func TestCreate_NoAccessories_NeverConflicts(t *testing.T) {
	ctx := context.Background()

	m := &mockRepo{
		lockOverlappingFn: func(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error) {
			return candidates(), nil
		},
	}
	svc := New(m)

	out, err := svc.Create(ctx, CreateInput{
		CustomerID: 1,
		DressID:    2,
		StartDate:  day(1, 10),
		EndDate:    day(1, 15),
	})
	require.NoError(t, err)
	require.NotNil(t, out)
}

func TestCreate_UnknownCustomer(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		customerNameFn: func(ctx context.Context, id int64) (string, error) {
			return "", sql.ErrNoRows
		},
	}
	svc := New(m)

	_, err := svc.Create(ctx, CreateInput{CustomerID: 404, DressID: 2})
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestSelectAccessories_CapExceeded(t *testing.T) {
	svc := New(&mockRepo{})
	err := svc.SelectAccessories(context.Background(), 1, 1, []int64{1, 2, 3})
	require.Error(t, err)
	require.Equal(t, ErrCapExceeded, Code(err))
}

func TestSelectAccessories_NotOwner(t *testing.T) {
	m := &mockRepo{
		getForUpdateFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			return &model.Rental{ID: id, CustomerID: 9}, nil
		},
	}
	svc := New(m)

	err := svc.SelectAccessories(context.Background(), 1, 2, []int64{3})
	require.Error(t, err)
	require.Equal(t, ErrNotOwner, Code(err))
}

func TestSelectAccessories_ExcludesOwnRental(t *testing.T) {
	// The rental being edited claims accessory 3 itself. With its own row
	// excluded from the candidate set, re-selecting 3 succeeds.
	var replaced []int64
	m := &mockRepo{
		getForUpdateFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			return &model.Rental{
				ID:         42,
				CustomerID: 2,
				StartDate:  day(1, 10),
				EndDate:    day(1, 15),
			}, nil
		},
		lockOverlappingFn: func(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error) {
			require.Equal(t, int64(42), excludeID)
			return nil, nil
		},
		replaceFn: func(ctx context.Context, rentalID int64, ids []int64) error {
			replaced = ids
			return nil
		},
	}
	svc := New(m)

	err := svc.SelectAccessories(context.Background(), 42, 2, []int64{3})
	require.NoError(t, err)
	require.Equal(t, []int64{3}, replaced)
}

func TestSelectAccessories_Conflict(t *testing.T) {
	m := &mockRepo{
		getForUpdateFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			return &model.Rental{
				ID:         8,
				CustomerID: 2,
				StartDate:  day(1, 10),
				EndDate:    day(1, 15),
			}, nil
		},
		lockOverlappingFn: func(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error) {
			return candidates(), nil
		},
		replaceFn: func(ctx context.Context, rentalID int64, ids []int64) error {
			t.Fatal("replace must not run on conflict")
			return nil
		},
	}
	svc := New(m)

	err := svc.SelectAccessories(context.Background(), 8, 2, []int64{5})
	require.Error(t, err)
	require.Equal(t, ErrConflict, Code(err))
}

func TestUpdateStatus_Invalid(t *testing.T) {
	svc := New(&mockRepo{
		updateStatusFn: func(ctx context.Context, id int64, st model.RentalStatus) (*model.Rental, error) {
			t.Fatal("must not reach repository")
			return nil, nil
		},
	})

	_, err := svc.UpdateStatus(context.Background(), 1, "SHIPPED")
	require.Error(t, err)
	require.Equal(t, ErrBadStatus, Code(err))
}

func TestConflictingService(t *testing.T) {
	m := &mockRepo{
		listOverlappingFn: func(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error) {
			return candidates(), nil
		},
	}
	svc := New(m)

	// Only the requested ids come back, not the full blacklist.
	got, err := svc.Conflicting(context.Background(), day(1, 1), day(3, 1), 0, []int64{5, 42})
	require.NoError(t, err)
	require.Equal(t, []int64{5}, got)

	got, err = svc.Conflicting(context.Background(), day(1, 1), day(3, 1), 0, nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestBlacklistService(t *testing.T) {
	m := &mockRepo{
		listOverlappingFn: func(ctx context.Context, start, end time.Time, excludeID int64) ([]Candidate, error) {
			require.Equal(t, int64(7), excludeID)
			return candidates(), nil
		},
	}
	svc := New(m)

	got, err := svc.Blacklist(context.Background(), day(1, 1), day(3, 1), 7)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 5, 7}, got)
}
