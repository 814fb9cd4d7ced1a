package location

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, sampler *RedisSampler, authMiddleware fiber.Handler) {
	r.Post("/permission", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			Granted bool `json:"granted"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		userID, _ := c.Locals("user_id").(string)
		if err := sampler.SetPermission(c.Context(), userID, req.Granted); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(fiber.Map{"granted": req.Granted})
	})

	r.Post("/fixes", authMiddleware, func(c *fiber.Ctx) error {
		var p Point
		if err := c.BodyParser(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
			return fiber.NewError(fiber.StatusBadRequest, "coordinates out of range")
		}
		userID, _ := c.Locals("user_id").(string)
		if err := sampler.Publish(c.Context(), userID, p); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.SendStatus(fiber.StatusAccepted)
	})

	r.Get("/last", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		p, err := sampler.Current(c.Context(), userID)
		switch {
		case errors.Is(err, ErrPermissionDenied):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		case errors.Is(err, ErrNoFix):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(p)
	})
}
