package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-access-backend/internal/model"
	"hotel-access-backend/internal/store"
)

type createEmployeeRequest struct {
	ID         string  `json:"id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Role       string  `json:"role"`
	RFIDCardID string  `json:"rfidCardId"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	JoinDate   string  `json:"joinDate"`
	Salary     float64 `json:"salary"`
}

// ListEmployees handles GET /api/employees.
func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.store.ListEmployees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

// CreateEmployee handles POST /api/employees.
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	emp := &model.Employee{
		ID:     req.ID,
		Name:   req.Name,
		Role:   req.Role,
		Phone:  req.Phone,
		Email:  req.Email,
		Salary: req.Salary,
		Status: model.EmployeeActive,
	}
	if req.RFIDCardID != "" {
		emp.RFIDCardID = &req.RFIDCardID
	}
	if req.JoinDate != "" {
		joined, err := time.Parse("2006-01-02", req.JoinDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid join date"})
			return
		}
		emp.JoinDate = joined
	}

	if err := h.store.CreateEmployee(c.Request.Context(), emp); err != nil {
		switch {
		case errors.Is(err, store.ErrEmployeeExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Employee ID already exists"})
		case errors.Is(err, store.ErrCardInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card already assigned"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		}
		return
	}
	c.JSON(http.StatusOK, emp)
}

// DeleteEmployee handles DELETE /api/employees?id=. The card stops
// opening doors as soon as the row is gone.
func (h *Handler) DeleteEmployee(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID required"})
		return
	}

	if err := h.store.DeleteEmployee(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
