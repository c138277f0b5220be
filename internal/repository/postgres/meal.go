package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arefin-dev/messwallet/internal/models"
)

type MealStore struct {
	pool *pgxpool.Pool
}

func NewMealStore(pool *pgxpool.Pool) *MealStore {
	return &MealStore{pool: pool}
}

const mealColumns = `id, user_id, meal_date, lunch, dinner, marked_by, auto_marked, created_at`

func scanMeal(row pgx.Row) (*models.Meal, error) {
	var m models.Meal
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.MealDate,
		&m.Lunch,
		&m.Dinner,
		&m.MarkedBy,
		&m.AutoMarked,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MealStore) GetByUserDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE user_id = $1 AND meal_date = $2`

	m, err := scanMeal(s.pool.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meal: %w", err)
	}
	return m, nil
}

func (s *MealStore) ListByDate(ctx context.Context, date time.Time) ([]models.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE meal_date = $1 ORDER BY created_at`
	return s.list(ctx, query, date)
}

func (s *MealStore) ListByMonth(ctx context.Context, month, year int) ([]models.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals
		WHERE EXTRACT(MONTH FROM meal_date) = $1 AND EXTRACT(YEAR FROM meal_date) = $2
		ORDER BY meal_date`
	return s.list(ctx, query, month, year)
}

func (s *MealStore) ListAll(ctx context.Context) ([]models.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals`
	return s.list(ctx, query)
}

func (s *MealStore) list(ctx context.Context, query string, args ...any) ([]models.Meal, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := make([]models.Meal, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	return meals, nil
}

func (s *MealStore) Create(ctx context.Context, m *models.Meal) (*models.Meal, error) {
	query := `
		INSERT INTO meals (user_id, meal_date, lunch, dinner, marked_by, auto_marked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING ` + mealColumns

	created, err := scanMeal(s.pool.QueryRow(ctx, query,
		m.UserID, m.MealDate, m.Lunch, m.Dinner, m.MarkedBy, m.AutoMarked))
	if err != nil {
		return nil, fmt.Errorf("insert meal: %w", err)
	}
	return created, nil
}

func (s *MealStore) Update(ctx context.Context, id uuid.UUID, lunch, dinner bool, markedBy uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE meals SET lunch = $2, dinner = $3, marked_by = $4, auto_marked = false WHERE id = $1`,
		id, lunch, dinner, markedBy)
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	return nil
}

func (s *MealStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM meals WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete meals by user: %w", err)
	}
	return nil
}

func (s *MealStore) DeleteAll(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM meals`)
	if err != nil {
		return fmt.Errorf("delete all meals: %w", err)
	}
	return nil
}
