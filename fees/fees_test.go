package fees

import (
	"errors"
	"testing"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicableMonths(t *testing.T) {
	cases := map[int]int{
		4: 12, 5: 11, 6: 10, 7: 9, 8: 8, 9: 7,
		10: 6, 11: 5, 12: 4, 1: 3, 2: 2, 3: 1,
	}
	for start, want := range cases {
		got, err := ApplicableMonths(start)
		require.NoError(t, err)
		assert.Equal(t, want, got, "start month %d", start)
	}
}

func TestApplicableMonthsMatchesSequenceLength(t *testing.T) {
	for start := 1; start <= 12; start++ {
		n, err := ApplicableMonths(start)
		require.NoError(t, err)
		seq, err := AcademicMonthsFrom(start)
		require.NoError(t, err)
		assert.Len(t, seq, n)
		assert.Equal(t, models.Mar, seq[len(seq)-1])
		assert.Equal(t, start, seq[0].Number())
	}
}

func TestApplicableMonthsRejectsOutOfRange(t *testing.T) {
	for _, start := range []int{0, 13, -1} {
		_, err := ApplicableMonths(start)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidConfiguration))
	}
	_, err := AcademicMonthsFrom(0)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfiguration))
}

func TestEnrollmentTotalRoundsEachComponent(t *testing.T) {
	// 10000/12 = 833.33 -> 833, 1000/12 = 83.33 -> 83
	total, err := EnrollmentTotal(4, 10000, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(12*(833+83)), total)

	// 6/12 rounds up to 1 per component; rounding the combined 12/12 would give 1.
	total, err = EnrollmentTotal(1, 6, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(3*(1+1)), total)
}

func TestPerMonthPriceAgreesWithEnrollment(t *testing.T) {
	for start := 1; start <= 12; start++ {
		total, err := EnrollmentTotal(start, 36500, 7300)
		require.NoError(t, err)
		price, err := PerMonthPrice(total, start)
		require.NoError(t, err)
		assert.Equal(t, MonthlyShare(36500)+MonthlyShare(7300), price)
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, int64(3), Round(2.5))
	assert.Equal(t, int64(2), Round(2.49))
	assert.Equal(t, int64(0), Round(0))
}

func TestValidateMonthSelection(t *testing.T) {
	unpaid := []models.MonthCode{models.May, models.Jun, models.Jul}

	err := ValidateMonthSelection([]models.MonthCode{models.Jun, models.Jul}, unpaid)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEarlierDuesPending))
	assert.Contains(t, err.Error(), "MAY")

	err = ValidateMonthSelection([]models.MonthCode{models.May, models.Jul}, unpaid)
	assert.True(t, errors.Is(err, apperrors.ErrNonConsecutiveMonths))

	assert.NoError(t, ValidateMonthSelection([]models.MonthCode{models.May, models.Jun}, unpaid))
	assert.NoError(t, ValidateMonthSelection(unpaid, unpaid))

	err = ValidateMonthSelection([]models.MonthCode{models.May, models.Jun, models.Jul, models.Aug}, unpaid)
	assert.True(t, errors.Is(err, apperrors.ErrNonConsecutiveMonths))

	err = ValidateMonthSelection(nil, unpaid)
	assert.True(t, errors.Is(err, apperrors.ErrMonthsRequired))

	err = ValidateMonthSelection([]models.MonthCode{models.Apr}, nil)
	assert.True(t, errors.Is(err, apperrors.ErrNoUnpaidMonths))
}

func TestUnpaidMonthsSkipsConfirmedOnly(t *testing.T) {
	payments := []models.Payment{
		{Status: models.PaymentStatusConfirmed, MonthsCovered: []models.MonthCode{models.Apr}},
		{Status: models.PaymentStatusPending, MonthsCovered: []models.MonthCode{models.May}},
	}
	unpaid, err := UnpaidMonths(4, PaidMonths(payments))
	require.NoError(t, err)
	require.Len(t, unpaid, 11)
	assert.Equal(t, models.May, unpaid[0])
}

func TestParseMonths(t *testing.T) {
	got, err := ParseMonths([]string{"apr", " May "})
	require.NoError(t, err)
	assert.Equal(t, []models.MonthCode{models.Apr, models.May}, got)

	_, err = ParseMonths([]string{"APRIL"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidMonth))
}
