package handlers

import (
	"bytes"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/resolvehub/issue-desk/internal/api/dto"
	"github.com/resolvehub/issue-desk/internal/auth"
	"github.com/resolvehub/issue-desk/internal/domain"
	"github.com/resolvehub/issue-desk/internal/service"
	apperrors "github.com/resolvehub/issue-desk/pkg/util"
)

// IssuesHandler manages issue submission and triage endpoints.
type IssuesHandler struct {
	service *service.IssueService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issueService *service.IssueService) *IssuesHandler {
	return &IssuesHandler{service: issueService}
}

// Submit POST /issues.
func (h *IssuesHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	issue, err := h.service.Submit(c.UserContext(), auth.SessionFromContext(c), service.SubmitIssueInput{
		Name:        req.Name,
		Email:       req.Email,
		College:     req.College,
		Title:       req.Title,
		Description: req.Description,
		Urgency:     req.Urgency,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewIssueResponse(*issue)})
}

// List GET /issues?status=Open|Resolved.
func (h *IssuesHandler) List(c *fiber.Ctx) error {
	var status *domain.IssueStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := domain.ParseIssueStatus(raw)
		if !ok {
			return apperrors.NewValidationError("status must be Open or Resolved", map[string]any{"status": raw})
		}
		status = &parsed
	}

	issues, err := h.service.List(c.UserContext(), auth.SessionFromContext(c), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIssueResponses(issues)})
}

// Get GET /issues/:id.
func (h *IssuesHandler) Get(c *fiber.Ctx) error {
	issue, err := h.service.Get(c.UserContext(), auth.SessionFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIssueResponse(*issue)})
}

// Resolve POST /issues/:id/resolve. An unknown id answers 204.
func (h *IssuesHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	issue, resolved, err := h.service.Resolve(c.UserContext(), auth.SessionFromContext(c), c.Params("id"), req.ResolvedBy, req.Response)
	if err != nil {
		return err
	}
	if !resolved {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.JSON(fiber.Map{"data": dto.NewIssueResponse(*issue)})
}

// Export GET /issues/export.
func (h *IssuesHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.Export(c.UserContext(), auth.SessionFromContext(c), &buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="issues.csv"`)
	return c.Send(buf.Bytes())
}
