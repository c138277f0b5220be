package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/cache"
	"github.com/arefin-dev/messwallet/internal/repository"
)

// AdminService owns the destructive maintenance operations.
type AdminService struct {
	meals         repository.MealRepository
	expenses      repository.ExpenseRepository
	deposits      repository.DepositRepository
	budgets       repository.BudgetRepository
	notifications repository.NotificationRepository
	maintenance   repository.MaintenanceRepository

	cache  *cache.Client
	logger *zap.Logger
}

func NewAdminService(
	meals repository.MealRepository,
	expenses repository.ExpenseRepository,
	deposits repository.DepositRepository,
	budgets repository.BudgetRepository,
	notifications repository.NotificationRepository,
	maintenance repository.MaintenanceRepository,
	cacheClient *cache.Client,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		meals:         meals,
		expenses:      expenses,
		deposits:      deposits,
		budgets:       budgets,
		notifications: notifications,
		maintenance:   maintenance,
		cache:         cacheClient,
		logger:        logger,
	}
}

// ClearAllData wipes every ledger, meal, budget, bill, audit, and
// notification row. Profiles and roles survive so the house keeps its
// members. Deletes run in a fixed order, each independent; a failure stops
// the sweep and leaves earlier tables already emptied.
func (s *AdminService) ClearAllData(ctx context.Context, p Principal) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"meals", s.meals.DeleteAll},
		{"expenses", s.expenses.DeleteAll},
		{"deposits", s.deposits.DeleteAll},
		{"shared_bills", s.maintenance.DeleteAllSharedBills},
		{"monthly_budgets", s.budgets.DeleteAll},
		{"audit_log", s.maintenance.DeleteAllAuditLogs},
		{"notifications", s.notifications.DeleteAll},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", step.name, err)
		}
	}

	s.cache.Delete(ctx, cache.KeyFinanceStats)
	s.logger.Info("all mess data cleared", zap.String("by", p.UserID.String()))
	return nil
}
