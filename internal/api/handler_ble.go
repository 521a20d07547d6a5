package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-access-backend/internal/model"
)

// BLEEvent handles GET /api/ble/event. BLE presence reports are
// non-authoritative telemetry: they are recorded as neutral tracking
// entries and never feed the access-grant decision.
func (h *Handler) BLEEvent(c *gin.Context) {
	deviceID := c.Query("device_id")
	tagID := c.Query("tag_id")
	status := c.Query("status") // 2 = Entry, 3 = Exit

	if deviceID == "" || tagID == "" || status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing params"})
		return
	}

	eventType := "Unknown"
	switch status {
	case "2":
		eventType = "Entry"
	case "3":
		eventType = "Exit"
	}

	entry := &model.AccessLog{
		DeviceID: deviceID,
		CardID:   tagID, // BLE tag id rides in the card field
		Type:     "BLE " + eventType,
		Access:   true,
		Message:  "BLE Device " + eventType,
	}
	if err := h.store.AppendLog(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "saved": true})
}
