package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/service"
)

type BudgetHandler struct {
	budgets *service.BudgetService
	logger  *zap.Logger
}

func NewBudgetHandler(budgets *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{budgets: budgets, logger: logger}
}

// List handles GET /v1/budgets
func (h *BudgetHandler) List(c *gin.Context) {
	budgets, err := h.budgets.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

// Current handles GET /v1/budgets/current. No row for this month is not an
// error; the client falls back to the default threshold.
func (h *BudgetHandler) Current(c *gin.Context) {
	budget, err := h.budgets.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

type createBudgetRequest struct {
	Month               int     `json:"month" binding:"required,min=1,max=12"`
	Year                int     `json:"year" binding:"required"`
	BudgetAmount        float64 `json:"budget_amount" binding:"required"`
	LowBalanceThreshold float64 `json:"low_balance_threshold"`
}

// Create handles POST /v1/budgets
func (h *BudgetHandler) Create(c *gin.Context) {
	var req createBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.budgets.Create(c.Request.Context(), principal(c), service.BudgetInput{
		Month:               req.Month,
		Year:                req.Year,
		BudgetAmount:        req.BudgetAmount,
		LowBalanceThreshold: req.LowBalanceThreshold,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, budget)
}

type updateBudgetRequest struct {
	BudgetAmount        float64 `json:"budget_amount" binding:"required"`
	LowBalanceThreshold float64 `json:"low_balance_threshold" binding:"required"`
}

// Update handles PUT /v1/budgets/:id
func (h *BudgetHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return
	}

	var req updateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.budgets.Update(c.Request.Context(), principal(c), id, req.BudgetAmount, req.LowBalanceThreshold); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// Delete handles DELETE /v1/budgets/:id
func (h *BudgetHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return
	}

	if err := h.budgets.Delete(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
