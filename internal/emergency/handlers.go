package emergency

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/sos", authMiddleware, func(c *fiber.Ctx) error {
		err := svc.SendSOS(c.Context())
		switch {
		case errors.Is(err, ErrNotConfigured):
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(fiber.Map{"status": "sent"})
	})
}
