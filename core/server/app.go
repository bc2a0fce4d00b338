package server

import (
	"errors"

	"bom-reconciler/core/apperr"
	"bom-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewApp creates the Fiber application with the structured error handler.
func NewApp(cfg Config, log *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.BodyLimit(),
		ErrorHandler:          errorHandler(log),
	})
}

// SendError writes err as the structured error body with its mapped status.
func SendError(c *fiber.Ctx, err error) error {
	return c.Status(apperr.Status(err)).JSON(apperr.ToBody(err))
}

// RequestLogger logs every request with its ray id.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(log, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	}
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			kind := apperr.KindInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				kind = apperr.KindNotFound
			case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusMethodNotAllowed:
				kind = apperr.KindValidation
			}
			return c.Status(fe.Code).JSON(apperr.Body{Error: apperr.BodyError{Kind: kind, Message: fe.Message}})
		}

		if apperr.KindOf(err) == apperr.KindInternal {
			logger.WithRayID(log, c).Error("Unhandled error", zap.Error(err))
		}
		return SendError(c, err)
	}
}
