package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arefin-dev/messwallet/internal/models"
)

type BudgetStore struct {
	pool *pgxpool.Pool
}

func NewBudgetStore(pool *pgxpool.Pool) *BudgetStore {
	return &BudgetStore{pool: pool}
}

const budgetColumns = `id, month, year, budget_amount, low_balance_threshold, is_locked, locked_by, created_at, updated_at`

func scanBudget(row pgx.Row) (*models.MonthlyBudget, error) {
	var b models.MonthlyBudget
	err := row.Scan(
		&b.ID,
		&b.Month,
		&b.Year,
		&b.BudgetAmount,
		&b.LowBalanceThreshold,
		&b.IsLocked,
		&b.LockedBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BudgetStore) List(ctx context.Context) ([]models.MonthlyBudget, error) {
	query := `SELECT ` + budgetColumns + ` FROM monthly_budgets ORDER BY year DESC, month DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]models.MonthlyBudget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return budgets, nil
}

func (s *BudgetStore) GetByMonthYear(ctx context.Context, month, year int) (*models.MonthlyBudget, error) {
	query := `SELECT ` + budgetColumns + ` FROM monthly_budgets WHERE month = $1 AND year = $2`

	b, err := scanBudget(s.pool.QueryRow(ctx, query, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (s *BudgetStore) Create(ctx context.Context, b *models.MonthlyBudget) (*models.MonthlyBudget, error) {
	query := `
		INSERT INTO monthly_budgets (month, year, budget_amount, low_balance_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING ` + budgetColumns

	created, err := scanBudget(s.pool.QueryRow(ctx, query,
		b.Month, b.Year, b.BudgetAmount, b.LowBalanceThreshold))
	if err != nil {
		return nil, fmt.Errorf("insert budget: %w", err)
	}
	return created, nil
}

func (s *BudgetStore) Update(ctx context.Context, id uuid.UUID, budgetAmount, lowBalanceThreshold float64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE monthly_budgets SET budget_amount = $2, low_balance_threshold = $3, updated_at = now() WHERE id = $1`,
		id, budgetAmount, lowBalanceThreshold)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return nil
}

func (s *BudgetStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM monthly_budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

func (s *BudgetStore) DeleteAll(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM monthly_budgets`)
	if err != nil {
		return fmt.Errorf("delete all budgets: %w", err)
	}
	return nil
}
