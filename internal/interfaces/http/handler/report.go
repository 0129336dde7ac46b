package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoplite/backend/internal/application/report"
)

// ReportHandler handles sales statistics API endpoints
type ReportHandler struct {
	BaseHandler
	statisticsService *report.StatisticsService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(statisticsService *report.StatisticsService) *ReportHandler {
	return &ReportHandler{statisticsService: statisticsService}
}

// SalesSummary reports total revenue and order count for a date range
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	var req report.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	from, to := req.Range()

	summary, err := h.statisticsService.SalesSummary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GrossProfit reports revenue minus cost at current purchase prices
func (h *ReportHandler) GrossProfit(c *gin.Context) {
	var req report.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	from, to := req.Range()

	profit, err := h.statisticsService.GrossProfit(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profit)
}

// TopSellingProducts ranks products by base-unit quantity sold
func (h *ReportHandler) TopSellingProducts(c *gin.Context) {
	var req report.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	from, to := req.Range()

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		h.BadRequest(c, "Query parameter 'limit' must be a positive integer")
		return
	}

	products, err := h.statisticsService.TopSellingProducts(c.Request.Context(), from, to, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}
