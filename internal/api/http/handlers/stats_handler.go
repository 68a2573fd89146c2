package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resolvehub/issue-desk/internal/api/dto"
	"github.com/resolvehub/issue-desk/internal/auth"
	"github.com/resolvehub/issue-desk/internal/service"
)

// StatsHandler serves the counters and chart data.
type StatsHandler struct {
	service *service.IssueService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(issueService *service.IssueService) *StatsHandler {
	return &StatsHandler{service: issueService}
}

// Counters GET /stats.
func (h *StatsHandler) Counters(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext(), auth.SessionFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		Total:    stats.Total,
		Resolved: stats.Resolved,
		Open:     stats.Open,
	}})
}

// Resolvers GET /stats/resolvers.
func (h *StatsHandler) Resolvers(c *fiber.Ctx) error {
	counts, err := h.service.ResolverCounts(c.UserContext(), auth.SessionFromContext(c))
	if err != nil {
		return err
	}
	items := make([]dto.ResolverCountResponse, 0, len(counts))
	for _, count := range counts {
		items = append(items, dto.ResolverCountResponse{ResolvedBy: count.ResolvedBy, Count: count.Count})
	}
	return c.JSON(fiber.Map{"data": items})
}
