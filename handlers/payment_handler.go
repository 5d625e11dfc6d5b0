package handlers

import (
	"fmt"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/services"
	"github.com/gofiber/fiber/v2"
)

type CreateOrderRequest struct {
	AdmissionNo  string   `json:"admissionNo" validate:"required"`
	AcademicYear string   `json:"academicYear" validate:"required"`
	PaymentType  string   `json:"paymentType" validate:"required"`
	Months       []string `json:"months"`
}

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	paymentReq, err := services.ParsePaymentRequest(req.PaymentType, req.Months)
	if err != nil {
		return err
	}

	res, err := h.svc.Payments.CreateOrder(c.UserContext(), services.OrderInput{
		AdmissionNo:  req.AdmissionNo,
		AcademicYear: req.AcademicYear,
		Request:      paymentReq,
	})
	if err != nil {
		return err
	}
	return c.JSON(res)
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId" validate:"required"`
	RazorpayPaymentID string `json:"razorpayPaymentId" validate:"required"`
	RazorpaySignature string `json:"razorpaySignature" validate:"required"`
}

func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.svc.Payments.Verify(c.UserContext(), services.VerifyInput{
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	})
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// GetReceipt streams the receipt PDF to an admin or to the student's parent.
func (h *Handler) GetReceipt(c *fiber.Ctx) error {
	paymentID, err := c.ParamsInt("paymentId")
	if err != nil || paymentID <= 0 {
		return apperrors.ErrReceiptNotAvailable
	}

	receipt, err := h.svc.Receipts.Fetch(c.UserContext(), uint(paymentID), services.Credentials{
		Authorization: c.Get(fiber.HeaderAuthorization),
		AdmissionNo:   c.Query("admissionNo"),
		DOB:           c.Query("dob"),
	})
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", receipt.Filename))
	return c.Send(receipt.PDF)
}
