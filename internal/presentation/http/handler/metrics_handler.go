package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/insights/internal/application/service"
	"github.com/sangkips/insights/internal/presentation/http/dto/request"
	"github.com/sangkips/insights/internal/presentation/http/dto/response"
	"github.com/sangkips/insights/pkg/apperror"
)

// MetricsHandler exposes the authenticated backend query functions
type MetricsHandler struct {
	operational *service.OperationalMetricsService
	marketing   *service.MarketingMetricsService
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(operational *service.OperationalMetricsService, marketing *service.MarketingMetricsService) *MetricsHandler {
	return &MetricsHandler{operational: operational, marketing: marketing}
}

// OperationalMetrics runs one owner/manager aggregation
// @Summary Operational metrics
// @Tags functions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.OperationalMetricsRequest true "Metric type"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /functions/operational-metrics [post]
func (h *MetricsHandler) OperationalMetrics(c *gin.Context) {
	ident := GetIdentity(c)
	if !ident.IsAuthenticated() {
		response.Error(c, apperror.ErrUnauthenticated)
		return
	}

	var req request.OperationalMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.NewInvalidArgumentError("Invalid request body"))
		return
	}

	rows, err := h.operational.Run(c.Request.Context(), ident, req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Metrics retrieved successfully", rows)
}

// MarketingMetrics runs the five marketing aggregations
// @Summary Marketing metrics
// @Tags functions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /functions/marketing-metrics [post]
func (h *MetricsHandler) MarketingMetrics(c *gin.Context) {
	out, err := h.marketing.Run(c.Request.Context(), GetIdentity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Metrics retrieved successfully", out)
}
