package api

import (
	"errors"

	"github.com/bobby-s-dev/agri-optimizer/internal/estimator"
	"github.com/bobby-s-dev/agri-optimizer/pkg/client"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatusFor maps domain and upstream errors onto HTTP status codes.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, estimator.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, client.ErrLocationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, estimator.ErrNoData):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, client.ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusFor(err)

	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", code),
		zap.Error(err),
	}
	if code >= fiber.StatusInternalServerError {
		zap.L().Error("HTTP error", fields...)
	} else {
		zap.L().Warn("HTTP error", fields...)
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}
