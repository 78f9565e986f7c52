package handler

import (
	"github.com/gofiber/fiber/v2"

	"data-catalog/internal/service/seed"
)

type SeedHandler struct {
	seedService seed.Service
}

func NewSeedHandler(seedService seed.Service) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

func (h *SeedHandler) Seed(c *fiber.Ctx) error {
	created, err := h.seedService.Seed(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"created": created})
}
