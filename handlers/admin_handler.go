package handlers

import (
	"github.com/anjiri1684/school_fees/fees"
	"github.com/anjiri1684/school_fees/middleware"
	"github.com/anjiri1684/school_fees/services"
	"github.com/gofiber/fiber/v2"
)

type CreateStudentRequest struct {
	AdmissionNo    string  `json:"admissionNo" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	DOB            string  `json:"dob" validate:"required"`
	AcademicYear   string  `json:"academicYear" validate:"required"`
	Class          string  `json:"class" validate:"required"`
	Section        *string `json:"section"`
	FeeStartMonth  int     `json:"feeStartMonth" validate:"required"`
	TransportOpted bool    `json:"transportOpted"`
	TransportFee   *int64  `json:"transportFee"`
}

func (h *Handler) CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.svc.Students.Enroll(c.UserContext(), services.EnrollInput{
		AdmissionNo:    req.AdmissionNo,
		Name:           req.Name,
		DOB:            req.DOB,
		AcademicYear:   req.AcademicYear,
		Class:          req.Class,
		Section:        req.Section,
		FeeStartMonth:  req.FeeStartMonth,
		TransportOpted: req.TransportOpted,
		TransportFee:   req.TransportFee,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

type ApplyDiscountRequest struct {
	AdmissionNo  string  `json:"admissionNo" validate:"required"`
	AcademicYear string  `json:"academicYear" validate:"required"`
	Amount       int64   `json:"amount"`
	Reason       *string `json:"reason"`
}

func (h *Handler) ApplyDiscount(c *fiber.Ctx) error {
	var req ApplyDiscountRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.svc.Discounts.ApplyDiscount(c.UserContext(), services.DiscountInput{
		AdmissionNo:  req.AdmissionNo,
		AcademicYear: req.AcademicYear,
		Amount:       req.Amount,
		Reason:       req.Reason,
	}, middleware.AdminID(c))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

type CashPaymentRequest struct {
	AdmissionNo   string   `json:"admissionNo" validate:"required"`
	AcademicYear  string   `json:"academicYear" validate:"required"`
	Amount        int64    `json:"amount"`
	MonthsCovered []string `json:"monthsCovered"`
}

func (h *Handler) RecordCashPayment(c *fiber.Ctx) error {
	var req CashPaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	months, err := fees.ParseMonths(req.MonthsCovered)
	if err != nil {
		return err
	}

	res, err := h.svc.Payments.RecordCash(c.UserContext(), services.CashInput{
		AdmissionNo:   req.AdmissionNo,
		AcademicYear:  req.AcademicYear,
		Amount:        req.Amount,
		MonthsCovered: months,
	}, middleware.AdminID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
