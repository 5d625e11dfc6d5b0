package handlers

import (
	"github.com/anjiri1684/school_fees/services"
	"github.com/gofiber/fiber/v2"
)

type StudentLoginRequest struct {
	AdmissionNo  string `json:"admissionNo" validate:"required"`
	DOB          string `json:"dob" validate:"required"`
	AcademicYear string `json:"academicYear" validate:"required"`
}

// StudentLogin returns the fee summary for a student identified by
// admission number and date of birth.
func (h *Handler) StudentLogin(c *fiber.Ctx) error {
	var req StudentLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	summary, err := h.svc.Students.Portal(c.UserContext(), services.PortalInput{
		AdmissionNo:  req.AdmissionNo,
		DOB:          req.DOB,
		AcademicYear: req.AcademicYear,
	})
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
