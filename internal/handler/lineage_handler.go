package handler

import (
	"github.com/gofiber/fiber/v2"

	"data-catalog/internal/domain"
	"data-catalog/internal/middleware"
	"data-catalog/internal/service/lineage"
)

type LineageHandler struct {
	lineageService lineage.Service
}

func NewLineageHandler(lineageService lineage.Service) *LineageHandler {
	return &LineageHandler{lineageService: lineageService}
}

func (h *LineageHandler) ListLineage(c *fiber.Ctx) error {
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return err
	}

	lineage, err := h.lineageService.ListLineage(c.Context(), productID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(lineage)
}

func (h *LineageHandler) AddLineage(c *fiber.Ctx) error {
	var input domain.CreateLineageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	lineage, err := h.lineageService.AddLineage(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(lineage)
}

func (h *LineageHandler) ListDependencies(c *fiber.Ctx) error {
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return err
	}

	deps, err := h.lineageService.ListDependencies(c.Context(), productID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(deps)
}

func (h *LineageHandler) AddDependency(c *fiber.Ctx) error {
	var input domain.CreateDependencyInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	dep, err := h.lineageService.AddDependency(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dep)
}
