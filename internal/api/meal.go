package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/models"
	"github.com/arefin-dev/messwallet/internal/service"
)

type MealHandler struct {
	meals  *service.MealService
	logger *zap.Logger
}

func NewMealHandler(meals *service.MealService, logger *zap.Logger) *MealHandler {
	return &MealHandler{meals: meals, logger: logger}
}

// ListByDate handles GET /v1/meals?date=YYYY-MM-DD (default today)
func (h *MealHandler) ListByDate(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		var err error
		date, err = time.Parse(models.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
	}

	meals, err := h.meals.ListByDate(c.Request.Context(), date)
	if err != nil {
		h.logger.Error("failed to list meals", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

// Today handles GET /v1/meals/today
func (h *MealHandler) Today(c *gin.Context) {
	summary, err := h.meals.TodaySummary(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to summarize meals", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type upsertMealRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Date   string    `json:"date" binding:"required"`
	Lunch  *bool     `json:"lunch"`
	Dinner *bool     `json:"dinner"`
}

// Upsert handles PUT /v1/meals
func (h *MealHandler) Upsert(c *gin.Context) {
	var req upsertMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	err = h.meals.Upsert(c.Request.Context(), principal(c), service.UpdateMealInput{
		UserID: req.UserID,
		Date:   date,
		Lunch:  req.Lunch,
		Dinner: req.Dinner,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// History handles GET /v1/meals/history?month=&year= (default current month)
func (h *MealHandler) History(c *gin.Context) {
	now := time.Now()
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
		return
	}
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	history, err := h.meals.History(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
