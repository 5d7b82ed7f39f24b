package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/insights/internal/application/service"
)

// InvestorHandler serves the legacy investor endpoint. It answers with the
// bare payload (no envelope) and a plain-text body on failure, which is what
// existing investor clients parse.
type InvestorHandler struct {
	investor *service.InvestorMetricsService
}

// NewInvestorHandler creates a new investor handler
func NewInvestorHandler(investor *service.InvestorMetricsService) *InvestorHandler {
	return &InvestorHandler{investor: investor}
}

// InvestorMetrics returns {kpis, trends, byCategory}
// @Summary Investor metrics (legacy, unauthenticated)
// @Tags legacy
// @Produce json
// @Success 200 {object} entity.InvestorMetrics
// @Failure 500 {string} string
// @Router /investor-metrics [get]
func (h *InvestorHandler) InvestorMetrics(c *gin.Context) {
	out, err := h.investor.Run(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, out)
}
