package handlers

import (
	"errors"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/logger"
	"github.com/gofiber/fiber/v2"
)

const internalMessage = "Something went wrong"

// ErrorHandler is the fiber error handler. Every failure leaves the API as
// {"error": message} with a status chosen by the error kind.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	status, message := classify(err)
	log := logger.With("request_id", c.Locals("requestid"))
	event := log.Warn()
	if status >= fiber.StatusInternalServerError || apperrors.KindOf(err) == apperrors.KindIntegrity {
		event = log.Error()
	}
	event.Err(err).
		Int("status", status).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")

	return c.Status(status).JSON(fiber.Map{"error": message})
}

func classify(err error) (int, string) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError, internalMessage
	}

	switch appErr.Kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest, appErr.Error()
	case apperrors.KindNotFound:
		return fiber.StatusNotFound, appErr.Error()
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized, appErr.Error()
	case apperrors.KindAccessDenied:
		return fiber.StatusForbidden, appErr.Error()
	case apperrors.KindConflict:
		return fiber.StatusConflict, appErr.Error()
	case apperrors.KindIntegrity:
		return fiber.StatusBadRequest, appErr.Message
	case apperrors.KindUnavailable:
		return fiber.StatusBadGateway, appErr.Message
	default:
		return fiber.StatusInternalServerError, internalMessage
	}
}
