package models

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusConfirmed:
		return true
	}
	return false
}

// CanTransition reports whether a payment may move from one status to another.
// PENDING -> CONFIRMED is the only transition.
func CanTransition(from, to PaymentStatus) bool {
	switch from {
	case PaymentStatusPending:
		return to == PaymentStatusConfirmed
	case PaymentStatusConfirmed:
		return false
	}
	return false
}

type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeOnline PaymentMode = "ONLINE"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeOnline:
		return true
	}
	return false
}

// MonthCode is a three-letter month as it appears in months_covered.
type MonthCode string

const (
	Jan MonthCode = "JAN"
	Feb MonthCode = "FEB"
	Mar MonthCode = "MAR"
	Apr MonthCode = "APR"
	May MonthCode = "MAY"
	Jun MonthCode = "JUN"
	Jul MonthCode = "JUL"
	Aug MonthCode = "AUG"
	Sep MonthCode = "SEP"
	Oct MonthCode = "OCT"
	Nov MonthCode = "NOV"
	Dec MonthCode = "DEC"
)

var monthNumbers = map[MonthCode]int{
	Jan: 1, Feb: 2, Mar: 3, Apr: 4, May: 5, Jun: 6,
	Jul: 7, Aug: 8, Sep: 9, Oct: 10, Nov: 11, Dec: 12,
}

// Number returns the calendar month (1-12), or 0 for an unknown code.
func (m MonthCode) Number() int {
	return monthNumbers[m]
}

func (m MonthCode) Valid() bool {
	return m.Number() != 0
}
