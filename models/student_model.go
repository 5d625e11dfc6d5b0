package models

import "time"

type Student struct {
	AdmissionNo string    `gorm:"primaryKey;size:50" json:"admission_no"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	DOB         time.Time `gorm:"not null" json:"dob"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StudentAcademic struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	AdmissionNo    string  `gorm:"size:50;not null;uniqueIndex:idx_academic_student_year" json:"admission_no"`
	AcademicYear   string  `gorm:"size:20;not null;uniqueIndex:idx_academic_student_year" json:"academic_year"`
	Class          string  `gorm:"size:20;not null" json:"class"`
	Section        *string `gorm:"size:10" json:"section,omitempty"`
	FeeStartMonth  int     `gorm:"not null" json:"fee_start_month"`
	TransportOpted bool    `gorm:"not null;default:false" json:"transport_opted"`
	TransportFee   *int64  `json:"transport_fee,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type FeeStructure struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AcademicYear string `gorm:"size:20;not null;uniqueIndex:idx_fee_structure_year_class" json:"academic_year"`
	Class        string `gorm:"size:20;not null;uniqueIndex:idx_fee_structure_year_class" json:"class"`
	TuitionFee   int64  `gorm:"not null" json:"tuition_fee"`
}
