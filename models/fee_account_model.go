package models

import "time"

// StudentFeeAccount is written only by the ledger package.
type StudentFeeAccount struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AdmissionNo  string `gorm:"size:50;not null;uniqueIndex:idx_fee_account_student_year" json:"admission_no"`
	AcademicYear string `gorm:"size:20;not null;uniqueIndex:idx_fee_account_student_year" json:"academic_year"`
	TotalFee     int64  `gorm:"not null;default:0" json:"total_fee"`
	TotalPaid    int64  `gorm:"not null;default:0" json:"total_paid"`
	Balance      int64  `gorm:"not null;default:0" json:"balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Discount struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	AdmissionNo  string  `gorm:"size:50;not null;index:idx_discount_student_year" json:"admission_no"`
	AcademicYear string  `gorm:"size:20;not null;index:idx_discount_student_year" json:"academic_year"`
	Amount       int64   `gorm:"not null" json:"amount"`
	Active       bool    `gorm:"not null;default:true;index" json:"active"`
	AppliedBy    uint    `gorm:"not null" json:"applied_by"`
	Reason       *string `gorm:"type:text" json:"reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
