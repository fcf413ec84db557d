package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"diamonddesk/api/internal/middleware"
	"diamonddesk/api/internal/models"
	"diamonddesk/api/internal/pricing"
)

type diamondRequest struct {
	Carat         float64 `json:"carat" binding:"required,gt=0"`
	Clarity       string  `json:"clarity" binding:"required"`
	Color         string  `json:"color" binding:"required"`
	Cut           string  `json:"cut" binding:"required"`
	Certification string  `json:"certification" binding:"required"`
	Quantity      int     `json:"quantity" binding:"omitempty,gt=0"`
}

type calculateRequest struct {
	StaffID  string           `json:"staffId"`
	Diamonds []diamondRequest `json:"diamonds" binding:"required,min=1,dive"`
}

type calculateResponse struct {
	TotalPrice       float64   `json:"totalPrice"`
	IndividualPrices []float64 `json:"individualPrices"`
	Timestamp        time.Time `json:"timestamp"`
}

func (h HandlerSet) CalculatePrice(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	diamonds := make([]pricing.Diamond, 0, len(req.Diamonds))
	for _, d := range req.Diamonds {
		diamonds = append(diamonds, pricing.Diamond{
			Carat:         d.Carat,
			Clarity:       d.Clarity,
			Color:         d.Color,
			Cut:           d.Cut,
			Certification: d.Certification,
			Quantity:      d.Quantity,
		})
	}

	result, err := h.pricing.Calculate(c.Request.Context(), h.calculatedBy(c, req.StaffID), diamonds)
	if err != nil {
		var invalid *pricing.InvalidDiamondError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, calculateResponse{
		TotalPrice:       result.TotalPrice,
		IndividualPrices: result.IndividualPrices,
		Timestamp:        result.Timestamp,
	})
}

// calculatedBy prefers the authenticated identity; the body staffId only
// matters on open deployments, and an empty claim falls back to "anonymous".
func (h HandlerSet) calculatedBy(c *gin.Context, bodyStaffID string) string {
	if staffID := c.GetString(middleware.ContextStaffID); staffID != "" {
		return staffID
	}
	if bodyStaffID != "" {
		return bodyStaffID
	}
	return "anonymous"
}

type calculationRecordResponse struct {
	Timestamp     time.Time `json:"timestamp"`
	Carat         float64   `json:"carat"`
	Clarity       string    `json:"clarity"`
	Color         string    `json:"color"`
	Cut           string    `json:"cut"`
	Certification string    `json:"certification"`
	Price         float64   `json:"price"`
	CalculatedBy  string    `json:"calculatedBy"`
}

func (h HandlerSet) CalculationHistory(c *gin.Context) {
	filter := models.CalculationFilter{
		StaffID: c.Query("staffId"),
	}

	limit, err := queryLimit(c, 50)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history, err := h.pricing.History(c.Request.Context(), filter, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]calculationRecordResponse, 0, len(history))
	for _, calc := range history {
		resp = append(resp, calculationRecordResponse{
			Timestamp:     calc.Timestamp,
			Carat:         calc.Carat,
			Clarity:       calc.Clarity,
			Color:         calc.Color,
			Cut:           calc.Cut,
			Certification: calc.Certification,
			Price:         calc.Price,
			CalculatedBy:  calc.CalculatedBy,
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": resp})
}
