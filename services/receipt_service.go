package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/logger"
	"github.com/anjiri1684/school_fees/models"
	"github.com/anjiri1684/school_fees/receipts"
	"github.com/anjiri1684/school_fees/utils"
	"gorm.io/gorm"
)

type ReceiptService struct {
	db       *gorm.DB
	verifier TokenVerifier
	renderer Renderer
}

func NewReceiptService(db *gorm.DB, verifier TokenVerifier, renderer Renderer) *ReceiptService {
	return &ReceiptService{db: db, verifier: verifier, renderer: renderer}
}

// Credentials are what a caller presents to download a receipt: an admin
// bearer token, or the student's admission number and date of birth.
type Credentials struct {
	Authorization string
	AdmissionNo   string
	DOB           string
}

type Access int

const (
	AccessAdmin Access = iota + 1
	AccessParent
)

func (a Access) String() string {
	switch a {
	case AccessAdmin:
		return "admin"
	case AccessParent:
		return "parent"
	default:
		return "none"
	}
}

type Receipt struct {
	Filename string
	PDF      []byte
}

// Authorize returns the payment when creds may see its receipt.
func (s *ReceiptService) Authorize(ctx context.Context, paymentID uint, creds Credentials) (*models.Payment, Access, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).First(&payment, paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.ErrReceiptNotAvailable
		}
		return nil, 0, err
	}
	if payment.Status != models.PaymentStatusConfirmed {
		return nil, 0, apperrors.ErrReceiptNotAvailable
	}

	if token, ok := utils.BearerToken(creds.Authorization); ok && s.verifier != nil {
		adminID, err := s.verifier.Verify(token)
		if err == nil {
			logger.Debug().Uint("payment_id", payment.ID).Uint("admin_id", adminID).Msg("receipt access granted to admin")
			return &payment, AccessAdmin, nil
		}
		logger.Debug().Err(err).Uint("payment_id", payment.ID).Msg("receipt bearer token rejected, trying parent credentials")
	}

	if creds.AdmissionNo == "" || creds.DOB == "" || creds.AdmissionNo != payment.AdmissionNo {
		return nil, 0, apperrors.ErrAccessDenied
	}
	dob, err := utils.ParseDate(creds.DOB)
	if err != nil {
		return nil, 0, apperrors.ErrAccessDenied
	}

	var student models.Student
	err = s.db.WithContext(ctx).Where("admission_no = ?", creds.AdmissionNo).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.ErrAccessDenied
		}
		return nil, 0, err
	}
	if !utils.SameDay(student.DOB, dob) {
		logger.Warn().Uint("payment_id", payment.ID).Str("admission_no", creds.AdmissionNo).Msg("receipt access denied: date of birth mismatch")
		return nil, 0, apperrors.ErrAccessDenied
	}
	return &payment, AccessParent, nil
}

// Fetch authorizes the caller and renders the receipt PDF.
func (s *ReceiptService) Fetch(ctx context.Context, paymentID uint, creds Credentials) (*Receipt, error) {
	payment, access, err := s.Authorize(ctx, paymentID, creds)
	if err != nil {
		return nil, err
	}

	doc := receipts.Document{Payment: *payment}
	if err := s.db.WithContext(ctx).Where("admission_no = ?", payment.AdmissionNo).First(&doc.Student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReceiptNotAvailable
		}
		return nil, err
	}
	err = s.db.WithContext(ctx).
		Where("admission_no = ? AND academic_year = ?", payment.AdmissionNo, payment.AcademicYear).
		First(&doc.Academic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAcademicRecordNotFound
		}
		return nil, err
	}

	pdf, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render receipt %d: %w", payment.ID, err)
	}

	logger.Info().Uint("payment_id", payment.ID).Str("access", access.String()).Msg("receipt downloaded")
	return &Receipt{Filename: fmt.Sprintf("receipt-%d.pdf", payment.ID), PDF: pdf}, nil
}
