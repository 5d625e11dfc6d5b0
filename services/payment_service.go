package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/fees"
	"github.com/anjiri1684/school_fees/ledger"
	"github.com/anjiri1684/school_fees/logger"
	"github.com/anjiri1684/school_fees/models"
	"github.com/anjiri1684/school_fees/payments"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentService struct {
	db            *gorm.DB
	ledger        *ledger.Ledger
	gateway       Gateway
	keySecret     string
	currency      string
	receiptPrefix string
	now           func() time.Time
}

func NewPaymentService(db *gorm.DB, l *ledger.Ledger, gateway Gateway, cfg Settings) *PaymentService {
	return &PaymentService{
		db:            db,
		ledger:        l,
		gateway:       gateway,
		keySecret:     cfg.KeySecret,
		currency:      cfg.Currency,
		receiptPrefix: cfg.ReceiptPrefix,
		now:           time.Now,
	}
}

type OrderInput struct {
	AdmissionNo  string
	AcademicYear string
	Request      PaymentRequest
}

type OrderResult struct {
	OrderID  string `json:"razorpayOrderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

type AccountTotals struct {
	TotalFee  int64 `json:"totalFee"`
	TotalPaid int64 `json:"totalPaid"`
	Balance   int64 `json:"balance"`
}

func totalsOf(acc *models.StudentFeeAccount) AccountTotals {
	return AccountTotals{TotalFee: acc.TotalFee, TotalPaid: acc.TotalPaid, Balance: acc.Balance}
}

// CreateOrder prices the request, opens a gateway order and records it as a
// PENDING payment. The ledger is not touched until the payment is verified.
func (s *PaymentService) CreateOrder(ctx context.Context, in OrderInput) (*OrderResult, error) {
	if in.AdmissionNo == "" || in.AcademicYear == "" || in.Request == nil {
		return nil, apperrors.ErrMissingFields
	}
	k := ledgerKey(in.AdmissionNo, in.AcademicYear)

	acc, err := s.ledger.Get(ctx, k)
	if err != nil {
		return nil, err
	}
	if acc.Balance <= 0 {
		return nil, apperrors.ErrNoOutstandingBalance
	}

	var amount int64
	monthsCovered := []models.MonthCode{}

	switch req := in.Request.(type) {
	case FullPayment:
		amount = acc.Balance
	case MonthsPayment:
		amount, err = s.monthsAmount(ctx, k, acc, req.Months)
		if err != nil {
			return nil, err
		}
		monthsCovered = req.Months
	default:
		return nil, apperrors.ErrInvalidPaymentType
	}

	if amount > acc.Balance {
		return nil, apperrors.ErrExceedsBalance
	}

	receiptTag := fmt.Sprintf("fee_%s_%d", in.AdmissionNo, s.now().UnixMilli())
	order, err := s.gateway.CreateOrder(ctx, amount*100, s.currency, receiptTag)
	if err != nil {
		logger.Error().Err(err).Str("account", k.String()).Int64("amount", amount).Msg("gateway order creation failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGatewayUnavailable, err)
	}

	orderID := order.ID
	payment := models.Payment{
		AdmissionNo:     in.AdmissionNo,
		AcademicYear:    in.AcademicYear,
		Amount:          amount,
		Mode:            models.PaymentModeOnline,
		Status:          models.PaymentStatusPending,
		MonthsCovered:   monthsCovered,
		RazorpayOrderID: &orderID,
	}
	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		logger.Error().Err(err).Str("order_id", orderID).Msg("gateway order created but pending payment was not recorded")
		return nil, fmt.Errorf("failed to record pending payment: %w", err)
	}

	logger.Info().Str("account", k.String()).Str("order_id", orderID).Int64("amount", amount).Msg("online order created")
	return &OrderResult{
		OrderID:  orderID,
		Amount:   amount,
		Currency: s.currency,
		Key:      s.gateway.KeyID(),
	}, nil
}

// monthsAmount checks that months is the oldest block of unpaid months and
// prices it from the current total fee.
func (s *PaymentService) monthsAmount(ctx context.Context, k ledger.Key, acc *models.StudentFeeAccount, months []models.MonthCode) (int64, error) {
	if len(months) == 0 {
		return 0, apperrors.ErrMonthsRequired
	}

	var academic models.StudentAcademic
	err := s.db.WithContext(ctx).
		Where("admission_no = ? AND academic_year = ?", k.AdmissionNo, k.AcademicYear).
		First(&academic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrAcademicRecordNotFound
		}
		return 0, err
	}

	var confirmed []models.Payment
	err = s.db.WithContext(ctx).
		Where("admission_no = ? AND academic_year = ? AND status = ?", k.AdmissionNo, k.AcademicYear, models.PaymentStatusConfirmed).
		Find(&confirmed).Error
	if err != nil {
		return 0, err
	}

	unpaid, err := fees.UnpaidMonths(academic.FeeStartMonth, fees.PaidMonths(confirmed))
	if err != nil {
		return 0, err
	}
	if err := fees.ValidateMonthSelection(months, unpaid); err != nil {
		return 0, err
	}

	perMonth, err := fees.PerMonthPrice(acc.TotalFee, academic.FeeStartMonth)
	if err != nil {
		return 0, err
	}

	amount := int64(len(months)) * perMonth
	if amount > acc.Balance {
		amount = acc.Balance
	}
	return amount, nil
}

type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

type PaymentResult struct {
	ReceiptNumber string        `json:"receiptNumber"`
	PaymentID     uint          `json:"paymentId"`
	FeeAccount    AccountTotals `json:"feeAccount"`
}

// Verify authenticates a checkout callback and confirms its pending payment.
// A replayed callback finds no PENDING row and is rejected.
func (s *PaymentService) Verify(ctx context.Context, in VerifyInput) (*PaymentResult, error) {
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		return nil, apperrors.ErrMissingFields
	}

	if !payments.VerifySignature(s.keySecret, in.OrderID, in.PaymentID, in.Signature) {
		logger.Warn().Str("order_id", in.OrderID).Str("gateway_payment_id", in.PaymentID).Msg("payment signature mismatch")
		return nil, apperrors.ErrInvalidSignature
	}

	var result PaymentResult
	err := s.ledger.Transact(ctx, func(tx *ledger.Tx) error {
		var payment models.Payment
		err := tx.DB().Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("razorpay_order_id = ? AND status = ?", in.OrderID, models.PaymentStatusPending).
			First(&payment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPaymentNotFoundOrAlreadyProcessed
			}
			return err
		}
		if !models.CanTransition(payment.Status, models.PaymentStatusConfirmed) {
			return apperrors.ErrPaymentNotFoundOrAlreadyProcessed
		}

		receiptNumber := fmt.Sprintf("RCPT-%d-%d", s.now().UnixMilli(), payment.ID)
		gatewayPaymentID := in.PaymentID
		res := tx.DB().Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, models.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":              models.PaymentStatusConfirmed,
				"razorpay_payment_id": gatewayPaymentID,
				"receipt_number":      receiptNumber,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return apperrors.ErrPaymentNotFoundOrAlreadyProcessed
		}

		acc, err := tx.ApplyDelta(ledgerKey(payment.AdmissionNo, payment.AcademicYear), payment.Amount, 0)
		if err != nil {
			return err
		}

		result = PaymentResult{
			ReceiptNumber: receiptNumber,
			PaymentID:     payment.ID,
			FeeAccount:    totalsOf(acc),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Uint("payment_id", result.PaymentID).Str("order_id", in.OrderID).Msg("online payment confirmed")
	return &result, nil
}

type CashInput struct {
	AdmissionNo   string
	AcademicYear  string
	Amount        int64
	MonthsCovered []models.MonthCode
}

// RecordCash books a cash payment collected by an administrator. The balance
// checks run under the account lock so concurrent collections cannot overpay.
func (s *PaymentService) RecordCash(ctx context.Context, in CashInput, collectedBy uint) (*PaymentResult, error) {
	if in.AdmissionNo == "" || in.AcademicYear == "" {
		return nil, apperrors.ErrMissingFields
	}
	if in.Amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	for _, m := range in.MonthsCovered {
		if !m.Valid() {
			return nil, apperrors.ErrInvalidMonth
		}
	}
	months := in.MonthsCovered
	if months == nil {
		months = []models.MonthCode{}
	}
	k := ledgerKey(in.AdmissionNo, in.AcademicYear)

	var result PaymentResult
	err := s.ledger.Transact(ctx, func(tx *ledger.Tx) error {
		acc, err := tx.Account(k)
		if err != nil {
			return err
		}
		if acc.Balance <= 0 {
			return apperrors.ErrNoOutstandingBalance
		}
		if in.Amount > acc.Balance {
			return apperrors.ErrExceedsBalance
		}

		collector := collectedBy
		payment := models.Payment{
			AdmissionNo:   in.AdmissionNo,
			AcademicYear:  in.AcademicYear,
			Amount:        in.Amount,
			Mode:          models.PaymentModeCash,
			Status:        models.PaymentStatusConfirmed,
			MonthsCovered: months,
			CollectedBy:   &collector,
		}
		if err := tx.DB().Create(&payment).Error; err != nil {
			return err
		}

		receiptNumber := fmt.Sprintf("%s/%s/%06d", s.receiptPrefix, in.AcademicYear, payment.ID)
		if err := tx.DB().Model(&payment).Update("receipt_number", receiptNumber).Error; err != nil {
			return err
		}

		updated, err := tx.ApplyDelta(k, in.Amount, 0)
		if err != nil {
			return err
		}

		result = PaymentResult{
			ReceiptNumber: receiptNumber,
			PaymentID:     payment.ID,
			FeeAccount:    totalsOf(updated),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Uint("payment_id", result.PaymentID).Uint("collected_by", collectedBy).Int64("amount", in.Amount).Msg("cash payment recorded")
	return &result, nil
}
