package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/fees"
	"github.com/anjiri1684/school_fees/ledger"
	"github.com/anjiri1684/school_fees/logger"
	"github.com/anjiri1684/school_fees/models"
	"github.com/anjiri1684/school_fees/utils"
	"gorm.io/gorm"
)

type StudentService struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

func NewStudentService(db *gorm.DB, l *ledger.Ledger) *StudentService {
	return &StudentService{db: db, ledger: l}
}

type EnrollInput struct {
	AdmissionNo    string
	Name           string
	DOB            string
	AcademicYear   string
	Class          string
	Section        *string
	FeeStartMonth  int
	TransportOpted bool
	TransportFee   *int64
}

type EnrollResult struct {
	Student    models.Student         `json:"student"`
	Academic   models.StudentAcademic `json:"academic"`
	FeeAccount AccountTotals          `json:"feeAccount"`
}

// Enroll registers a student for an academic year and opens the fee account
// with the prorated total.
func (s *StudentService) Enroll(ctx context.Context, in EnrollInput) (*EnrollResult, error) {
	in.AdmissionNo = strings.TrimSpace(in.AdmissionNo)
	in.Name = strings.TrimSpace(in.Name)
	if in.AdmissionNo == "" || in.Name == "" || in.DOB == "" || in.AcademicYear == "" || in.Class == "" {
		return nil, apperrors.ErrMissingFields
	}
	dob, err := utils.ParseDate(in.DOB)
	if err != nil {
		return nil, err
	}
	if _, err := fees.ApplicableMonths(in.FeeStartMonth); err != nil {
		return nil, err
	}

	var transport int64
	switch {
	case in.TransportOpted && (in.TransportFee == nil || *in.TransportFee <= 0):
		return nil, apperrors.ErrTransportFeeRequired
	case !in.TransportOpted && in.TransportFee != nil && *in.TransportFee != 0:
		return nil, apperrors.ErrTransportFeeNotOpted
	case in.TransportOpted:
		transport = *in.TransportFee
	}

	var result EnrollResult
	err = s.ledger.Transact(ctx, func(tx *ledger.Tx) error {
		var count int64
		if err := tx.DB().Model(&models.Student{}).Where("admission_no = ?", in.AdmissionNo).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrStudentExists
		}

		var structure models.FeeStructure
		err := tx.DB().Where("academic_year = ? AND class = ?", in.AcademicYear, in.Class).First(&structure).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrFeeStructureNotFound
			}
			return err
		}

		total, err := fees.EnrollmentTotal(in.FeeStartMonth, structure.TuitionFee, transport)
		if err != nil {
			return err
		}

		student := models.Student{AdmissionNo: in.AdmissionNo, Name: in.Name, DOB: dob}
		if err := tx.DB().Create(&student).Error; err != nil {
			return err
		}

		academic := models.StudentAcademic{
			AdmissionNo:    in.AdmissionNo,
			AcademicYear:   in.AcademicYear,
			Class:          in.Class,
			Section:        in.Section,
			FeeStartMonth:  in.FeeStartMonth,
			TransportOpted: in.TransportOpted,
		}
		if in.TransportOpted {
			academic.TransportFee = in.TransportFee
		}
		if err := tx.DB().Create(&academic).Error; err != nil {
			return err
		}

		acc, err := tx.Open(ledgerKey(in.AdmissionNo, in.AcademicYear), total)
		if err != nil {
			return err
		}

		result = EnrollResult{Student: student, Academic: academic, FeeAccount: totalsOf(acc)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("admission_no", in.AdmissionNo).Str("academic_year", in.AcademicYear).Int64("total_fee", result.FeeAccount.TotalFee).Msg("student enrolled")
	return &result, nil
}

type PortalInput struct {
	AdmissionNo  string
	DOB          string
	AcademicYear string
}

type PortalSummary struct {
	Student      models.Student         `json:"student"`
	Academic     models.StudentAcademic `json:"academic"`
	FeeAccount   AccountTotals          `json:"feeAccount"`
	Discounts    []models.Discount      `json:"discounts"`
	Payments     []models.Payment       `json:"payments"`
	UnpaidMonths []models.MonthCode     `json:"unpaidMonths"`
	MonthlyFee   int64                  `json:"monthlyFee"`
}

// Portal is the read-only fee summary shown to a student who signs in with
// admission number and date of birth.
func (s *StudentService) Portal(ctx context.Context, in PortalInput) (*PortalSummary, error) {
	if in.AdmissionNo == "" || in.DOB == "" || in.AcademicYear == "" {
		return nil, apperrors.ErrMissingFields
	}
	dob, err := utils.ParseDate(in.DOB)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	db := s.db.WithContext(ctx)
	var summary PortalSummary
	if err := db.Where("admission_no = ?", in.AdmissionNo).First(&summary.Student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.SameDay(summary.Student.DOB, dob) {
		return nil, apperrors.ErrInvalidCredentials
	}

	err = db.Where("admission_no = ? AND academic_year = ?", in.AdmissionNo, in.AcademicYear).First(&summary.Academic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAcademicRecordNotFound
		}
		return nil, err
	}

	acc, err := s.ledger.Get(ctx, ledgerKey(in.AdmissionNo, in.AcademicYear))
	if err != nil {
		return nil, err
	}
	summary.FeeAccount = totalsOf(acc)

	err = db.Where("admission_no = ? AND academic_year = ? AND active = ?", in.AdmissionNo, in.AcademicYear, true).
		Find(&summary.Discounts).Error
	if err != nil {
		return nil, err
	}

	err = db.Where("admission_no = ? AND academic_year = ? AND status IN ?", in.AdmissionNo, in.AcademicYear,
		[]models.PaymentStatus{models.PaymentStatusConfirmed, models.PaymentStatusPending}).
		Order("created_at desc").Order("id desc").
		Find(&summary.Payments).Error
	if err != nil {
		return nil, err
	}

	summary.UnpaidMonths, err = fees.UnpaidMonths(summary.Academic.FeeStartMonth, fees.PaidMonths(summary.Payments))
	if err != nil {
		return nil, err
	}
	summary.MonthlyFee, err = fees.PerMonthPrice(acc.TotalFee, summary.Academic.FeeStartMonth)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
