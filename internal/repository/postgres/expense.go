package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arefin-dev/messwallet/internal/models"
)

type ExpenseStore struct {
	pool *pgxpool.Pool
}

func NewExpenseStore(pool *pgxpool.Pool) *ExpenseStore {
	return &ExpenseStore{pool: pool}
}

const expenseColumns = `id, category_id, item_name, amount, quantity, unit, paid_by, added_by, expense_date, expense_type, is_emergency, notes, created_at`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	err := row.Scan(
		&e.ID,
		&e.CategoryID,
		&e.ItemName,
		&e.Amount,
		&e.Quantity,
		&e.Unit,
		&e.PaidBy,
		&e.AddedBy,
		&e.ExpenseDate,
		&e.ExpenseType,
		&e.IsEmergency,
		&e.Notes,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ExpenseStore) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (category_id, item_name, amount, quantity, unit, paid_by, added_by, expense_date, expense_type, is_emergency, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		RETURNING ` + expenseColumns

	created, err := scanExpense(s.pool.QueryRow(ctx, query,
		e.CategoryID, e.ItemName, e.Amount, e.Quantity, e.Unit,
		e.PaidBy, e.AddedBy, e.ExpenseDate, e.ExpenseType, e.IsEmergency, e.Notes))
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return created, nil
}

func (s *ExpenseStore) List(ctx context.Context, limit int) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func (s *ExpenseStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (s *ExpenseStore) DeleteByPayer(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM expenses WHERE paid_by = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete expenses by payer: %w", err)
	}
	return nil
}

func (s *ExpenseStore) DeleteAll(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM expenses`)
	if err != nil {
		return fmt.Errorf("delete all expenses: %w", err)
	}
	return nil
}

// CategoryStore serves the seeded expense categories.
type CategoryStore struct {
	pool *pgxpool.Pool
}

func NewCategoryStore(pool *pgxpool.Pool) *CategoryStore {
	return &CategoryStore{pool: pool}
}

func (s *CategoryStore) List(ctx context.Context) ([]models.ExpenseCategory, error) {
	query := `SELECT id, name, name_bn, created_at FROM expense_categories ORDER BY name`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.ExpenseCategory, 0)
	for rows.Next() {
		var c models.ExpenseCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.NameBn, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}
