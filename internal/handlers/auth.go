package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"diamonddesk/api/internal/middleware"
	"diamonddesk/api/internal/service"
)

type loginRequest struct {
	StaffID string `json:"staffId" binding:"required"`
	Branch  string `json:"branch" binding:"required"`
	Counter string `json:"counter"`
}

type loginResponse struct {
	Token   string `json:"token"`
	StaffID string `json:"staffId"`
	Message string `json:"message"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		StaffID:   req.StaffID,
		Branch:    req.Branch,
		Counter:   req.Counter,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:   result.Token,
		StaffID: result.StaffID,
		Message: "Login successful",
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	staffID := c.GetString(middleware.ContextStaffID)

	if _, err := h.auth.Logout(c.Request.Context(), staffID); err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active session"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
