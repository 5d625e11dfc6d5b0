package services

import (
	"context"
	"strings"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/fees"
	"github.com/anjiri1684/school_fees/ledger"
	"github.com/anjiri1684/school_fees/models"
	"github.com/anjiri1684/school_fees/payments"
	"github.com/anjiri1684/school_fees/receipts"
	"gorm.io/gorm"
)

// Gateway creates payment intents that the payer completes out of band.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*payments.Order, error)
	KeyID() string
}

type Renderer interface {
	Render(ctx context.Context, doc receipts.Document) ([]byte, error)
}

// TokenVerifier accepts an admin bearer token and returns the admin id.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// PaymentRequest is either FullPayment or MonthsPayment.
type PaymentRequest interface {
	isPaymentRequest()
}

// FullPayment settles the whole outstanding balance.
type FullPayment struct{}

// MonthsPayment pays a contiguous block of the oldest unpaid months.
type MonthsPayment struct {
	Months []models.MonthCode
}

func (FullPayment) isPaymentRequest()   {}
func (MonthsPayment) isPaymentRequest() {}

const (
	PaymentTypeFull   = "FULL"
	PaymentTypeMonths = "MONTHS"
)

// ParsePaymentRequest validates the raw request fields at the boundary.
func ParsePaymentRequest(paymentType string, months []string) (PaymentRequest, error) {
	switch strings.ToUpper(strings.TrimSpace(paymentType)) {
	case PaymentTypeFull:
		return FullPayment{}, nil
	case PaymentTypeMonths:
		if len(months) == 0 {
			return nil, apperrors.ErrMonthsRequired
		}
		codes, err := fees.ParseMonths(months)
		if err != nil {
			return nil, err
		}
		return MonthsPayment{Months: codes}, nil
	case "":
		return nil, apperrors.ErrMissingFields
	default:
		return nil, apperrors.ErrInvalidPaymentType
	}
}

type Settings struct {
	KeySecret     string
	Currency      string
	ReceiptPrefix string
	JWTSecret     string
}

type Services struct {
	Payments  *PaymentService
	Discounts *DiscountService
	Receipts  *ReceiptService
	Students  *StudentService
	Auth      *AuthService
}

// New wires every service around the shared database handle and gateway.
func New(db *gorm.DB, l *ledger.Ledger, gateway Gateway, renderer Renderer, verifier TokenVerifier, cfg Settings) *Services {
	return &Services{
		Payments:  NewPaymentService(db, l, gateway, cfg),
		Discounts: NewDiscountService(l),
		Receipts:  NewReceiptService(db, verifier, renderer),
		Students:  NewStudentService(db, l),
		Auth:      NewAuthService(db, cfg.JWTSecret),
	}
}

func ledgerKey(admissionNo, academicYear string) ledger.Key {
	return ledger.Key{AdmissionNo: admissionNo, AcademicYear: academicYear}
}
