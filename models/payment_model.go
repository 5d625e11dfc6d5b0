package models

import (
	"time"

	"gorm.io/datatypes"
)

type Payment struct {
	ID                uint                           `gorm:"primaryKey" json:"id"`
	AdmissionNo       string                         `gorm:"size:50;not null;index:idx_payment_student_year" json:"admission_no"`
	AcademicYear      string                         `gorm:"size:20;not null;index:idx_payment_student_year" json:"academic_year"`
	Amount            int64                          `gorm:"not null" json:"amount"`
	Mode              PaymentMode                    `gorm:"size:10;not null" json:"mode"`
	Status            PaymentStatus                  `gorm:"size:20;not null;index" json:"status"`
	MonthsCovered     datatypes.JSONSlice[MonthCode] `json:"months_covered"`
	RazorpayOrderID   *string                        `gorm:"size:255;uniqueIndex" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID *string                        `gorm:"size:255" json:"razorpay_payment_id,omitempty"`
	ReceiptNumber     *string                        `gorm:"size:100;uniqueIndex" json:"receipt_number,omitempty"`
	CollectedBy       *uint                          `json:"collected_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
