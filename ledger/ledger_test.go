package ledger

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/database/dbtest"
	"github.com/anjiri1684/school_fees/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var key = Key{AdmissionNo: "A-100", AcademicYear: "2025-26"}

func openAccount(t *testing.T, db *gorm.DB, l *Ledger, totalFee int64) {
	t.Helper()
	err := l.Transact(context.Background(), func(tx *Tx) error {
		_, err := tx.Open(key, totalFee)
		return err
	})
	require.NoError(t, err)
}

func assertInvariant(t *testing.T, acc models.StudentFeeAccount) {
	t.Helper()
	want := acc.TotalFee - acc.TotalPaid
	if want < 0 {
		want = 0
	}
	assert.Equal(t, want, acc.Balance)
	assert.GreaterOrEqual(t, acc.TotalFee, int64(0))
	assert.GreaterOrEqual(t, acc.TotalPaid, int64(0))
	assert.GreaterOrEqual(t, acc.Balance, int64(0))
}

func TestApplyClampsBalance(t *testing.T) {
	acc, err := Apply(models.StudentFeeAccount{TotalFee: 1000, TotalPaid: 900, Balance: 100}, 0, -300)
	require.NoError(t, err)
	assert.Equal(t, int64(700), acc.TotalFee)
	assert.Equal(t, int64(0), acc.Balance)

	_, err = Apply(models.StudentFeeAccount{TotalFee: 100}, 0, -101)
	assert.True(t, errors.Is(err, apperrors.ErrNegativeTotals))
}

func TestApplyDeltaPersistsAllTotals(t *testing.T) {
	db := dbtest.New(t)
	l := New(db, 3)
	openAccount(t, db, l, 12000)

	err := l.Transact(context.Background(), func(tx *Tx) error {
		_, err := tx.ApplyDelta(key, 2000, 0)
		return err
	})
	require.NoError(t, err)

	acc, err := l.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), acc.TotalFee)
	assert.Equal(t, int64(2000), acc.TotalPaid)
	assert.Equal(t, int64(10000), acc.Balance)
}

func TestApplyDeltaMissingAccount(t *testing.T) {
	db := dbtest.New(t)
	l := New(db, 3)

	err := l.Transact(context.Background(), func(tx *Tx) error {
		_, err := tx.ApplyDelta(key, 1, 0)
		return err
	})
	assert.True(t, errors.Is(err, apperrors.ErrAccountNotFound))

	_, err = l.Get(context.Background(), key)
	assert.True(t, errors.Is(err, apperrors.ErrAccountNotFound))
}

func TestInvariantHoldsAfterRandomSequence(t *testing.T) {
	db := dbtest.New(t)
	l := New(db, 3)
	openAccount(t, db, l, 50000)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		deltaPaid := int64(rng.Intn(3000))
		deltaFee := int64(rng.Intn(4000) - 2000)
		_ = l.Transact(context.Background(), func(tx *Tx) error {
			_, err := tx.ApplyDelta(key, deltaPaid, deltaFee)
			return err
		})

		acc, err := l.Get(context.Background(), key)
		require.NoError(t, err)
		assertInvariant(t, *acc)
	}
}

func TestFailedTransactionLeavesAccountUntouched(t *testing.T) {
	db := dbtest.New(t)
	l := New(db, 3)
	openAccount(t, db, l, 1000)

	boom := errors.New("companion write failed")
	err := l.Transact(context.Background(), func(tx *Tx) error {
		if _, err := tx.ApplyDelta(key, 500, 0); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	acc, err := l.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), acc.TotalPaid)
	assert.Equal(t, int64(1000), acc.Balance)
}

func TestConcurrentPaymentsNeverOverpay(t *testing.T) {
	db := dbtest.New(t)
	l := New(db, 3)
	openAccount(t, db, l, 100)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Transact(context.Background(), func(tx *Tx) error {
				acc, err := tx.Account(key)
				if err != nil {
					return err
				}
				if acc.Balance < 10 {
					return apperrors.ErrExceedsBalance
				}
				_, err = tx.ApplyDelta(key, 10, 0)
				return err
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	acc, err := l.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.TotalPaid)
	assert.Equal(t, int64(0), acc.Balance)
}

func TestTransactRetriesConflicts(t *testing.T) {
	db := dbtest.New(t)
	l := New(db, 3)

	calls := 0
	err := l.Transact(context.Background(), func(tx *Tx) error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: pgSerializationFailure}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestTransactGivesUpAfterMaxRetries(t *testing.T) {
	db := dbtest.New(t)
	l := New(db, 2)

	calls := 0
	err := l.Transact(context.Background(), func(tx *Tx) error {
		calls++
		return &pgconn.PgError{Code: pgDeadlockDetected}
	})
	assert.Equal(t, 2, calls)
	assert.True(t, errors.Is(err, apperrors.ErrConcurrentModification))
	assert.Equal(t, apperrors.KindIntegrity, apperrors.KindOf(err))
}

func TestTransactDoesNotRetryOtherErrors(t *testing.T) {
	db := dbtest.New(t)
	l := New(db, 3)

	calls := 0
	err := l.Transact(context.Background(), func(tx *Tx) error {
		calls++
		return apperrors.ErrExceedsBalance
	})
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, apperrors.ErrExceedsBalance)
}
