package fees

import (
	"strings"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/models"
)

// AcademicMonthsFrom returns the billing months from feeStartMonth to March.
func AcademicMonthsFrom(feeStartMonth int) ([]models.MonthCode, error) {
	for i, m := range AcademicOrder {
		if m.Number() == feeStartMonth {
			out := make([]models.MonthCode, len(AcademicOrder)-i)
			copy(out, AcademicOrder[i:])
			return out, nil
		}
	}
	return nil, apperrors.ErrInvalidConfiguration
}

// UnpaidMonths filters already-paid months out of the billing sequence,
// keeping academic order.
func UnpaidMonths(feeStartMonth int, paid map[models.MonthCode]bool) ([]models.MonthCode, error) {
	all, err := AcademicMonthsFrom(feeStartMonth)
	if err != nil {
		return nil, err
	}
	unpaid := all[:0]
	for _, m := range all {
		if !paid[m] {
			unpaid = append(unpaid, m)
		}
	}
	return unpaid, nil
}

// PaidMonths collects the months covered by confirmed payments.
func PaidMonths(payments []models.Payment) map[models.MonthCode]bool {
	paid := make(map[models.MonthCode]bool)
	for _, p := range payments {
		if p.Status != models.PaymentStatusConfirmed {
			continue
		}
		for _, m := range p.MonthsCovered {
			paid[m] = true
		}
	}
	return paid
}

// ValidateMonthSelection requires requested to be the leading block of unpaid.
func ValidateMonthSelection(requested, unpaid []models.MonthCode) error {
	if len(requested) == 0 {
		return apperrors.ErrMonthsRequired
	}
	if len(unpaid) == 0 {
		return apperrors.ErrNoUnpaidMonths
	}
	if requested[0] != unpaid[0] {
		return apperrors.EarlierDuesPending(string(unpaid[0]))
	}
	if len(requested) > len(unpaid) {
		return apperrors.ErrNonConsecutiveMonths
	}
	for i, m := range requested {
		if m != unpaid[i] {
			return apperrors.ErrNonConsecutiveMonths
		}
	}
	return nil
}

// ParseMonths normalises and checks month codes such as "apr" or "APR".
func ParseMonths(raw []string) ([]models.MonthCode, error) {
	out := make([]models.MonthCode, 0, len(raw))
	for _, r := range raw {
		m := models.MonthCode(strings.ToUpper(strings.TrimSpace(r)))
		if !m.Valid() {
			return nil, apperrors.ErrInvalidMonth
		}
		out = append(out, m)
	}
	return out, nil
}
