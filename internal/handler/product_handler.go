package handler

import (
	"github.com/gofiber/fiber/v2"

	"data-catalog/internal/domain"
	"data-catalog/internal/middleware"
	"data-catalog/internal/service/docupload"
	"data-catalog/internal/service/product"
)

const maxDocumentationSize = 10 << 20

type ProductHandler struct {
	productService product.Service
	docService     docupload.Service
}

func NewProductHandler(productService product.Service, docService docupload.Service) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		docService:     docService,
	}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	var filter domain.ProductFilter
	if err := c.QueryParser(&filter); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	products, err := h.productService.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	p, err := h.productService.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	p, err := h.productService.Create(c.Context(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	p, err := h.productService.Update(c.Context(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	deleted, err := h.productService.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return middleware.NotFound("Data product not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.productService.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *ProductHandler) UploadDocumentation(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("No file uploaded")
	}
	if file.Size > maxDocumentationSize {
		return middleware.NewError(fiber.StatusRequestEntityTooLarge, "File size exceeds 10MB limit")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	p, err := h.docService.Upload(c.Context(), middleware.GetActor(c), id, docupload.UploadInput{
		FileName:    file.Filename,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
		Reader:      src,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(p)
}
