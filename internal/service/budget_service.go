package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arefin-dev/messwallet/internal/cache"
	"github.com/arefin-dev/messwallet/internal/models"
	"github.com/arefin-dev/messwallet/internal/repository"
)

// BudgetService owns the at-most-one-per-(month,year) budget rows.
type BudgetService struct {
	budgets repository.BudgetRepository
	cache   *cache.Client
}

func NewBudgetService(budgets repository.BudgetRepository, cacheClient *cache.Client) *BudgetService {
	return &BudgetService{budgets: budgets, cache: cacheClient}
}

func (s *BudgetService) List(ctx context.Context) ([]models.MonthlyBudget, error) {
	return s.budgets.List(ctx)
}

// Current returns the budget row for the current month, or nil.
func (s *BudgetService) Current(ctx context.Context) (*models.MonthlyBudget, error) {
	now := time.Now()
	return s.budgets.GetByMonthYear(ctx, int(now.Month()), now.Year())
}

type BudgetInput struct {
	Month               int
	Year                int
	BudgetAmount        float64
	LowBalanceThreshold float64
}

func (s *BudgetService) Create(ctx context.Context, p Principal, in BudgetInput) (*models.MonthlyBudget, error) {
	if !p.IsAdmin() {
		return nil, ErrAdminOnly
	}
	budget, err := s.budgets.Create(ctx, &models.MonthlyBudget{
		Month:               in.Month,
		Year:                in.Year,
		BudgetAmount:        in.BudgetAmount,
		LowBalanceThreshold: in.LowBalanceThreshold,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cache.KeyFinanceStats)
	return budget, nil
}

func (s *BudgetService) Update(ctx context.Context, p Principal, id uuid.UUID, budgetAmount, lowBalanceThreshold float64) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}
	if err := s.budgets.Update(ctx, id, budgetAmount, lowBalanceThreshold); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.KeyFinanceStats)
	return nil
}

func (s *BudgetService) Delete(ctx context.Context, p Principal, id uuid.UUID) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}
	if err := s.budgets.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.KeyFinanceStats)
	return nil
}
