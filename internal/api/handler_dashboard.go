package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-access-backend/internal/model"
	"hotel-access-backend/internal/store"
)

// DashboardStats handles GET /api/dashboard/stats. The dashboard polls
// this endpoint; on a backing-store fault it degrades to an empty
// snapshot instead of erroring so the page keeps rendering.
func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.store.DashboardStats(c.Request.Context())
	if err != nil {
		log.Printf("dashboard stats error: %v", err)
		c.JSON(http.StatusOK, store.DashboardStats{RecentLogs: []model.AccessLog{}})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Analytics handles GET /api/analytics.
func (h *Handler) Analytics(c *gin.Context) {
	report, err := h.store.Analytics(c.Request.Context())
	if err != nil {
		log.Printf("analytics error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}
	c.JSON(http.StatusOK, report)
}
