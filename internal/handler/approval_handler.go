package handler

import (
	"github.com/gofiber/fiber/v2"

	"data-catalog/internal/domain"
	"data-catalog/internal/middleware"
	"data-catalog/internal/service/approval"
)

type ApprovalHandler struct {
	approvalService approval.Service
}

func NewApprovalHandler(approvalService approval.Service) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

func (h *ApprovalHandler) List(c *fiber.Ctx) error {
	var status *domain.ApprovalStatus
	if s := c.Query("status"); s != "" && s != "all" {
		st := domain.ApprovalStatus(s)
		if !st.IsValid() {
			return middleware.BadRequest("Invalid status filter")
		}
		status = &st
	}

	requests, err := h.approvalService.List(c.Context(), status)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

func (h *ApprovalHandler) ListPending(c *fiber.Ctx) error {
	requests, err := h.approvalService.ListPending(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

func (h *ApprovalHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	req, err := h.approvalService.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *ApprovalHandler) Submit(c *fiber.Ctx) error {
	var input domain.CreateApprovalRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.approvalService.Submit(c.Context(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *ApprovalHandler) Review(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.ReviewApprovalRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.approvalService.Review(c.Context(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}
