// Package ledger owns the totals of every student fee account. Other packages
// read accounts freely but change totalFee, totalPaid and balance only through
// Tx.ApplyDelta inside Ledger.Transact.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/logger"
	"github.com/anjiri1684/school_fees/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

type Key struct {
	AdmissionNo  string
	AcademicYear string
}

func (k Key) String() string {
	return k.AdmissionNo + "/" + k.AcademicYear
}

type Ledger struct {
	db         *gorm.DB
	maxRetries int
}

func New(db *gorm.DB, maxRetries int) *Ledger {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Ledger{db: db, maxRetries: maxRetries}
}

// Transact runs fn in a single transaction. Aborts caused by a conflicting
// concurrent update are retried; fn must therefore be safe to re-run.
func (l *Ledger) Transact(ctx context.Context, fn func(tx *Tx) error) error {
	for attempt := 1; ; attempt++ {
		err := l.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
			return fn(&Tx{db: db})
		})
		if err == nil || !isConflict(err) {
			return err
		}
		if attempt >= l.maxRetries {
			logger.Error().Err(err).Int("attempts", attempt).Msg("ledger transaction retries exhausted")
			return fmt.Errorf("%w: %v", apperrors.ErrConcurrentModification, err)
		}
		logger.Warn().Err(err).Int("attempt", attempt).Msg("ledger transaction conflict, retrying")
	}
}

// Get reads an account without locking it.
func (l *Ledger) Get(ctx context.Context, key Key) (*models.StudentFeeAccount, error) {
	var acc models.StudentFeeAccount
	err := l.db.WithContext(ctx).
		Where("admission_no = ? AND academic_year = ?", key.AdmissionNo, key.AcademicYear).
		First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// Tx is a ledger transaction. DB exposes the same transaction for the
// caller's companion writes (payment and discount rows).
type Tx struct {
	db *gorm.DB
}

func (t *Tx) DB() *gorm.DB {
	return t.db
}

// Account reads and row-locks the account for key.
func (t *Tx) Account(key Key) (*models.StudentFeeAccount, error) {
	var acc models.StudentFeeAccount
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("admission_no = ? AND academic_year = ?", key.AdmissionNo, key.AcademicYear).
		First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// ApplyDelta adds deltaPaid and deltaFee to the account and recomputes the
// balance, writing all three totals in one statement.
func (t *Tx) ApplyDelta(key Key, deltaPaid, deltaFee int64) (*models.StudentFeeAccount, error) {
	acc, err := t.Account(key)
	if err != nil {
		return nil, err
	}

	next, err := Apply(*acc, deltaPaid, deltaFee)
	if err != nil {
		return nil, err
	}

	err = t.db.Model(acc).Updates(map[string]interface{}{
		"total_fee":  next.TotalFee,
		"total_paid": next.TotalPaid,
		"balance":    next.Balance,
	}).Error
	if err != nil {
		return nil, err
	}
	return &next, nil
}

// Open creates the account for a newly enrolled student.
func (t *Tx) Open(key Key, totalFee int64) (*models.StudentFeeAccount, error) {
	if totalFee < 0 {
		return nil, apperrors.ErrNegativeTotals
	}
	acc := models.StudentFeeAccount{
		AdmissionNo:  key.AdmissionNo,
		AcademicYear: key.AcademicYear,
		TotalFee:     totalFee,
		TotalPaid:    0,
		Balance:      totalFee,
	}
	if err := t.db.Create(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

// Apply computes the account after a delta without touching storage.
func Apply(acc models.StudentFeeAccount, deltaPaid, deltaFee int64) (models.StudentFeeAccount, error) {
	acc.TotalFee += deltaFee
	acc.TotalPaid += deltaPaid
	if acc.TotalFee < 0 || acc.TotalPaid < 0 {
		return models.StudentFeeAccount{}, apperrors.ErrNegativeTotals
	}
	acc.Balance = acc.TotalFee - acc.TotalPaid
	if acc.Balance < 0 {
		acc.Balance = 0
	}
	return acc, nil
}

func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}
