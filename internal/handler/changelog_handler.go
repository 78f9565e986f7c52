package handler

import (
	"github.com/gofiber/fiber/v2"

	"data-catalog/internal/service/changelog"
)

type ChangelogHandler struct {
	changelogService changelog.Service
}

func NewChangelogHandler(changelogService changelog.Service) *ChangelogHandler {
	return &ChangelogHandler{changelogService: changelogService}
}

func (h *ChangelogHandler) ForProduct(c *fiber.Ctx) error {
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return err
	}

	changes, err := h.changelogService.ChangesFor(c.Context(), productID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(changes)
}

func (h *ChangelogHandler) Recent(c *fiber.Ctx) error {
	changes, err := h.changelogService.Recent(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(changes)
}
