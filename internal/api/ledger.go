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

type LedgerHandler struct {
	ledger *service.LedgerService
	logger *zap.Logger
}

func NewLedgerHandler(ledger *service.LedgerService, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, logger: logger}
}

// limitQuery parses ?limit=; 0 means all rows.
func limitQuery(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// ListDeposits handles GET /v1/deposits
func (h *LedgerHandler) ListDeposits(c *gin.Context) {
	deposits, err := h.ledger.ListDeposits(c.Request.Context(), limitQuery(c))
	if err != nil {
		h.logger.Error("failed to list deposits", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deposits)
}

type createDepositRequest struct {
	UserID      uuid.UUID `json:"user_id" binding:"required"`
	Amount      float64   `json:"amount" binding:"required"`
	DepositDate string    `json:"deposit_date"`
	Notes       *string   `json:"notes"`
}

// CreateDeposit handles POST /v1/deposits
func (h *LedgerHandler) CreateDeposit(c *gin.Context) {
	var req createDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var depositDate time.Time
	if req.DepositDate != "" {
		var err error
		depositDate, err = time.Parse(models.DateLayout, req.DepositDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "deposit_date must be YYYY-MM-DD"})
			return
		}
	}

	deposit, err := h.ledger.CreateDeposit(c.Request.Context(), principal(c), service.CreateDepositInput{
		UserID:      req.UserID,
		Amount:      req.Amount,
		DepositDate: depositDate,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deposit)
}

type bulkDepositRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Notes  *string `json:"notes"`
}

// BulkDeposit handles POST /v1/deposits/bulk
func (h *LedgerHandler) BulkDeposit(c *gin.Context) {
	var req bulkDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.ledger.BulkDeposit(c.Request.Context(), principal(c), req.Amount, req.Notes)
	if err != nil {
		h.logger.Error("bulk deposit failed",
			zap.Int("rows_created", len(created)),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeleteDeposit handles DELETE /v1/deposits/:id
func (h *LedgerHandler) DeleteDeposit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deposit id"})
		return
	}

	if err := h.ledger.DeleteDeposit(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListExpenses handles GET /v1/expenses
func (h *LedgerHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.ledger.ListExpenses(c.Request.Context(), limitQuery(c))
	if err != nil {
		h.logger.Error("failed to list expenses", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// ListCategories handles GET /v1/categories
func (h *LedgerHandler) ListCategories(c *gin.Context) {
	categories, err := h.ledger.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

type createExpenseRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	ItemName    string     `json:"item_name" binding:"required"`
	Amount      float64    `json:"amount" binding:"required"`
	Quantity    *float64   `json:"quantity"`
	Unit        *string    `json:"unit"`
	PaidBy      uuid.UUID  `json:"paid_by" binding:"required"`
	ExpenseDate string     `json:"expense_date"`
	ExpenseType string     `json:"expense_type"`
	IsEmergency bool       `json:"is_emergency"`
	Notes       *string    `json:"notes"`
	Split       bool       `json:"split"`
}

func (r createExpenseRequest) toInput() (service.CreateExpenseInput, error) {
	var expenseDate time.Time
	if r.ExpenseDate != "" {
		var err error
		expenseDate, err = time.Parse(models.DateLayout, r.ExpenseDate)
		if err != nil {
			return service.CreateExpenseInput{}, err
		}
	}
	return service.CreateExpenseInput{
		CategoryID:  r.CategoryID,
		ItemName:    r.ItemName,
		Amount:      r.Amount,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		PaidBy:      r.PaidBy,
		ExpenseDate: expenseDate,
		ExpenseType: r.ExpenseType,
		IsEmergency: r.IsEmergency,
		Notes:       r.Notes,
	}, nil
}

// CreateExpense handles POST /v1/expenses. A body with "split": true fans
// the amount out across every member instead of recording a single row.
func (h *LedgerHandler) CreateExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expense_date must be YYYY-MM-DD"})
		return
	}

	if req.Split {
		created, err := h.ledger.SplitExpense(c.Request.Context(), principal(c), in)
		if err != nil {
			h.logger.Error("split expense failed",
				zap.Int("rows_created", len(created)),
				zap.Error(err),
			)
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
		return
	}

	expense, err := h.ledger.CreateExpense(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// DeleteExpense handles DELETE /v1/expenses/:id
func (h *LedgerHandler) DeleteExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	if err := h.ledger.DeleteExpense(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Stats handles GET /v1/stats
func (h *LedgerHandler) Stats(c *gin.Context) {
	stats, err := h.ledger.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute stats", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
