package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindAccessDenied
	KindConflict
	// KindIntegrity covers signature mismatches and exhausted ledger retries.
	// Callers never see the underlying detail.
	KindIntegrity
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindAccessDenied:
		return "access_denied"
	case KindConflict:
		return "conflict"
	case KindIntegrity:
		return "integrity"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and caller-facing message to err.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Validation
var (
	ErrMissingFields        = New(KindValidation, "Missing required fields")
	ErrInvalidAmount        = New(KindValidation, "Invalid payment amount")
	ErrInvalidConfiguration = New(KindValidation, "Invalid fee start month configuration")
	ErrInvalidPaymentType   = New(KindValidation, "Invalid payment type")
	ErrMonthsRequired       = New(KindValidation, "Months required for MONTHS payment")
	ErrInvalidMonth         = New(KindValidation, "Invalid month code")
	ErrInvalidDate          = New(KindValidation, "Invalid date")
	ErrTransportFeeRequired = New(KindValidation, "Transport fee required if transport is opted")
	ErrTransportFeeNotOpted = New(KindValidation, "Transport fee should not be provided if transport is not opted")
)

// Not found
var (
	ErrAccountNotFound                   = New(KindNotFound, "Fee account not found")
	ErrAcademicRecordNotFound            = New(KindNotFound, "Academic record not found")
	ErrFeeStructureNotFound              = New(KindNotFound, "Fee structure not defined for this class and year")
	ErrPaymentNotFoundOrAlreadyProcessed = New(KindNotFound, "Payment not found or already processed")
	ErrReceiptNotAvailable               = New(KindNotFound, "Receipt not available")
)

// Authentication and authorization
var (
	ErrInvalidCredentials = New(KindUnauthorized, "Invalid credentials")
	ErrAccessDenied       = New(KindAccessDenied, "Access denied")
)

// Business rules
var (
	ErrAmountExceedsObligation = New(KindConflict, "Discount cannot exceed total fee")
	ErrNoOutstandingBalance    = New(KindConflict, "No outstanding balance")
	ErrExceedsBalance          = New(KindConflict, "Payment exceeds outstanding balance")
	ErrEarlierDuesPending      = New(KindConflict, "Please clear earlier dues first")
	ErrNonConsecutiveMonths    = New(KindConflict, "Selected months must be consecutive unpaid months")
	ErrNoUnpaidMonths          = New(KindConflict, "No unpaid months remain for this academic year")
	ErrStudentExists           = New(KindConflict, "Student with this admission number already exists")
	ErrNegativeTotals          = New(KindConflict, "Fee account totals cannot become negative")
)

// Integrity and upstream failures
var (
	ErrInvalidSignature       = New(KindIntegrity, "Invalid payment signature")
	ErrConcurrentModification = New(KindIntegrity, "Fee account was modified concurrently")
	ErrGatewayUnavailable     = New(KindUnavailable, "Payment gateway unavailable")
)

// EarlierDuesPending names the oldest unpaid month.
func EarlierDuesPending(month string) error {
	return &Error{
		Kind:    KindConflict,
		Message: fmt.Sprintf("Please clear earlier dues first. Pending from %s.", month),
		Err:     ErrEarlierDuesPending,
	}
}
