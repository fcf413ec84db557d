package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"diamonddesk/api/internal/models"
	"diamonddesk/api/internal/service"
)

type loginLogRequest struct {
	StaffID string `json:"staffId" binding:"required"`
	Branch  string `json:"branch" binding:"required"`
	Counter string `json:"counter"`
	Success *bool  `json:"success" binding:"required"`
	Details string `json:"details"`
	Token   string `json:"token"`
}

func (h HandlerSet) CreateLoginLog(c *gin.Context) {
	var req loginLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.logs.Record(c.Request.Context(), service.ActivityInput{
		StaffID:      req.StaffID,
		Branch:       req.Branch,
		Counter:      req.Counter,
		Success:      *req.Success,
		Details:      req.Details,
		SessionToken: req.Token,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.GetHeader("User-Agent"),
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login log recorded"})
}

type activityRequest struct {
	StaffID string `json:"staffId" binding:"required"`
	Branch  string `json:"branch" binding:"required"`
	Counter string `json:"counter"`
	Success *bool  `json:"success" binding:"required"`
	Details string `json:"details"`
}

func (h HandlerSet) LogActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.logs.Record(c.Request.Context(), service.ActivityInput{
		StaffID:   req.StaffID,
		Branch:    req.Branch,
		Counter:   req.Counter,
		Success:   *req.Success,
		Details:   req.Details,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activity recorded"})
}

type loginLogResponse struct {
	ID           string    `json:"id"`
	StaffID      string    `json:"staffId"`
	Branch       string    `json:"branch"`
	Counter      string    `json:"counter"`
	Success      bool      `json:"success"`
	Details      string    `json:"details"`
	Timestamp    time.Time `json:"timestamp"`
	IPAddress    string    `json:"ipAddress"`
	UserAgent    string    `json:"userAgent"`
	SessionToken *string   `json:"sessionToken"`
	LoggedOut    bool      `json:"loggedOut"`
}

func (h HandlerSet) ListLoginLogs(c *gin.Context) {
	filter := models.LoginLogFilter{
		StaffID: c.Query("staffId"),
		Branch:  c.Query("branch"),
	}

	limit, err := queryLimit(c, 100)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, err := h.logs.List(c.Request.Context(), filter, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]loginLogResponse, 0, len(logs))
	for _, log := range logs {
		resp = append(resp, loginLogResponse{
			ID:           log.ID,
			StaffID:      log.StaffID,
			Branch:       log.Branch,
			Counter:      log.Counter,
			Success:      log.Success,
			Details:      log.Details,
			Timestamp:    log.Timestamp,
			IPAddress:    log.IPAddress,
			UserAgent:    log.UserAgent,
			SessionToken: log.SessionToken,
			LoggedOut:    log.LoggedOut,
		})
	}

	c.JSON(http.StatusOK, gin.H{"logs": resp})
}

func queryLimit(c *gin.Context, def int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	return limit, nil
}
