package services

import (
	"context"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/ledger"
	"github.com/anjiri1684/school_fees/logger"
	"github.com/anjiri1684/school_fees/models"
)

type DiscountService struct {
	ledger *ledger.Ledger
}

func NewDiscountService(l *ledger.Ledger) *DiscountService {
	return &DiscountService{ledger: l}
}

type DiscountInput struct {
	AdmissionNo  string
	AcademicYear string
	Amount       int64
	Reason       *string
}

type DiscountResult struct {
	DiscountID uint          `json:"discountId"`
	FeeAccount AccountTotals `json:"feeAccount"`
}

// ApplyDiscount replaces the active discount for the account. The fee is
// recomputed from the undiscounted baseline, so discounts never stack.
func (s *DiscountService) ApplyDiscount(ctx context.Context, in DiscountInput, appliedBy uint) (*DiscountResult, error) {
	if in.AdmissionNo == "" || in.AcademicYear == "" {
		return nil, apperrors.ErrMissingFields
	}
	if in.Amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	k := ledgerKey(in.AdmissionNo, in.AcademicYear)

	var result DiscountResult
	err := s.ledger.Transact(ctx, func(tx *ledger.Tx) error {
		acc, err := tx.Account(k)
		if err != nil {
			return err
		}

		var active []models.Discount
		err = tx.DB().
			Where("admission_no = ? AND academic_year = ? AND active = ?", k.AdmissionNo, k.AcademicYear, true).
			Find(&active).Error
		if err != nil {
			return err
		}
		var activeAmount int64
		for _, d := range active {
			activeAmount += d.Amount
		}

		baseline := acc.TotalFee + activeAmount
		if in.Amount >= baseline+acc.TotalPaid || in.Amount > baseline {
			return apperrors.ErrAmountExceedsObligation
		}

		err = tx.DB().Model(&models.Discount{}).
			Where("admission_no = ? AND academic_year = ? AND active = ?", k.AdmissionNo, k.AcademicYear, true).
			Update("active", false).Error
		if err != nil {
			return err
		}

		discount := models.Discount{
			AdmissionNo:  k.AdmissionNo,
			AcademicYear: k.AcademicYear,
			Amount:       in.Amount,
			Active:       true,
			AppliedBy:    appliedBy,
			Reason:       in.Reason,
		}
		if err := tx.DB().Create(&discount).Error; err != nil {
			return err
		}

		updated, err := tx.ApplyDelta(k, 0, activeAmount-in.Amount)
		if err != nil {
			return err
		}

		result = DiscountResult{DiscountID: discount.ID, FeeAccount: totalsOf(updated)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("account", k.String()).Int64("amount", in.Amount).Uint("applied_by", appliedBy).Msg("discount applied")
	return &result, nil
}
