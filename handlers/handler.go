package handlers

import (
	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

type Handler struct {
	svc *services.Services
	db  *gorm.DB
}

func New(svc *services.Services, db *gorm.DB) *Handler {
	return &Handler{svc: svc, db: db}
}

// bind parses the JSON body into req and validates its tags.
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.Wrap(err, apperrors.KindValidation, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.Wrap(err, apperrors.KindValidation, apperrors.ErrMissingFields.Message)
	}
	return nil
}
