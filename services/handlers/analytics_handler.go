package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/daffahardhan/portfolio_api/dto"
	"github.com/daffahardhan/portfolio_api/shared"
)

type AnalyticsHandler struct {
	analyticsSvc AnalyticsServiceInterface

	defaultRetentionDays int
}

func NewAnalyticsHandler(analyticsSvc AnalyticsServiceInterface, defaultRetentionDays int) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc:         analyticsSvc,
		defaultRetentionDays: defaultRetentionDays,
	}
}

// @Summary Track a page visit
// @Description Record a page view for the calling client, deduplicating visitors by IP
// @Tags analytics
// @Accept json
// @Produce json
// @Param trackRequest body dto.TrackVisitRequest true "Visited page"
// @Success 200 {object} shared.Response
// @Router /api/analytics/visit [post]
func (h *AnalyticsHandler) TrackVisit(c *fiber.Ctx) error {
	var req dto.TrackVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	clientIP := shared.ClientIP(c)
	userAgent := c.Get("User-Agent")

	if err := h.analyticsSvc.TrackVisit(c.Context(), clientIP, userAgent, req); err != nil {
		return err
	}

	return shared.ResponseOKMessage(c, "Visit tracked", nil)
}

// @Summary Analytics summary
// @Description Aggregate visitor and page-view statistics with the top ten pages
// @Tags analytics
// @Produce json
// @Success 200 {object} shared.Response{data=dto.AnalyticsSummary}
// @Router /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.analyticsSvc.GetSummary(c.Context())
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, summary)
}

// @Summary Clean up old visitor data
// @Description Delete visitors (and their page views) not seen within the given number of days
// @Tags analytics
// @Produce json
// @Param days query int false "Retention window in days" default(90)
// @Success 200 {object} shared.Response{data=dto.CleanupResponse}
// @Router /api/analytics/cleanup [delete]
func (h *AnalyticsHandler) Cleanup(c *fiber.Ctx) error {
	days := h.defaultRetentionDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return shared.NewBadRequestError(err, "Invalid days parameter")
		}
		days = parsed
	}

	deleted, err := h.analyticsSvc.Cleanup(c.Context(), days)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Cleaned up visitor data older than %d days", days)
	return shared.ResponseOKMessage(c, message, dto.CleanupResponse{DeletedCount: deleted})
}
