package activity

import (
	"errors"

	"backend-healthband/internal/location"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, mgr *Manager, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/session/start", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		err := mgr.Start(c.Context(), userID)
		switch {
		case errors.Is(err, ErrSessionActive):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case errors.Is(err, location.ErrPermissionDenied):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(mgr.Status(userID))
	})

	r.Post("/session/stop", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		rec, err := mgr.Stop(c.Context(), userID)
		switch {
		case errors.Is(err, ErrNoActiveSession):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case err != nil:
			// The session is back to Idle; the collected data is gone.
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(rec)
	})

	r.Get("/session", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		return c.JSON(mgr.Status(userID))
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		records, err := svc.ListByUser(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if records == nil {
			records = []Record{}
		}
		return c.JSON(records)
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		rec, err := svc.GetRecord(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(rec)
	})
}
