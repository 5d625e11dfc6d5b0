// Package fees turns an annual fee into the per-month schedule of an April to
// March academic year and validates which months a payment may cover.
package fees

import (
	"math"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/models"
)

const (
	sessionStartMonth = 4 // April
	sessionEndMonth   = 3 // March
	monthsPerYear     = 12
)

// AcademicOrder lists the billing months of one academic year in order.
var AcademicOrder = []models.MonthCode{
	models.Apr, models.May, models.Jun, models.Jul, models.Aug, models.Sep,
	models.Oct, models.Nov, models.Dec, models.Jan, models.Feb, models.Mar,
}

// ApplicableMonths counts the months from feeStartMonth through the following
// March, inclusive.
func ApplicableMonths(feeStartMonth int) (int, error) {
	if feeStartMonth < 1 || feeStartMonth > monthsPerYear {
		return 0, apperrors.ErrInvalidConfiguration
	}
	if feeStartMonth >= sessionStartMonth {
		return monthsPerYear - feeStartMonth + 1 + sessionEndMonth, nil
	}
	return sessionEndMonth - feeStartMonth + 1, nil
}

// Round rounds half away from zero for the non-negative amounts used here.
func Round(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// MonthlyShare is one month of an annual fee, rounded.
func MonthlyShare(annual int64) int64 {
	return Round(float64(annual) / monthsPerYear)
}

// EnrollmentTotal is the fee owed for the months a student is billed. Tuition
// and transport are rounded to monthly shares independently before summing so
// that the total agrees with later per-month pricing.
func EnrollmentTotal(feeStartMonth int, tuition, transport int64) (int64, error) {
	months, err := ApplicableMonths(feeStartMonth)
	if err != nil {
		return 0, err
	}
	monthly := MonthlyShare(tuition) + MonthlyShare(transport)
	return Round(float64(int64(months) * monthly)), nil
}

// PerMonthPrice spreads the current total fee over the applicable months.
func PerMonthPrice(totalFee int64, feeStartMonth int) (int64, error) {
	months, err := ApplicableMonths(feeStartMonth)
	if err != nil {
		return 0, err
	}
	return Round(float64(totalFee) / float64(months)), nil
}
