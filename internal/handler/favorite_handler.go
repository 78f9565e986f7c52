package handler

import (
	"github.com/gofiber/fiber/v2"

	"data-catalog/internal/domain"
	"data-catalog/internal/middleware"
	"data-catalog/internal/service/favorite"
)

type FavoriteHandler struct {
	favoriteService favorite.Service
}

func NewFavoriteHandler(favoriteService favorite.Service) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}

	favorites, err := h.favoriteService.List(c.Context(), email)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(favorites)
}

func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	var input domain.AddFavoriteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.UserEmail == "" {
		input.UserEmail = middleware.GetActor(c)
	}

	fav, err := h.favoriteService.Add(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fav)
}

func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return err
	}

	removed, err := h.favoriteService.Remove(c.Context(), email, productID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": removed})
}

func (h *FavoriteHandler) Check(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return err
	}

	favorited, err := h.favoriteService.IsFavorited(c.Context(), email, productID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"isFavorited": favorited})
}
