package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arefin-dev/messwallet/internal/models"
)

type DepositStore struct {
	pool *pgxpool.Pool
}

func NewDepositStore(pool *pgxpool.Pool) *DepositStore {
	return &DepositStore{pool: pool}
}

const depositColumns = `id, user_id, amount, deposit_date, added_by, notes, created_at`

func scanDeposit(row pgx.Row) (*models.Deposit, error) {
	var d models.Deposit
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Amount,
		&d.DepositDate,
		&d.AddedBy,
		&d.Notes,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DepositStore) Create(ctx context.Context, d *models.Deposit) (*models.Deposit, error) {
	query := `
		INSERT INTO deposits (user_id, amount, deposit_date, added_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING ` + depositColumns

	created, err := scanDeposit(s.pool.QueryRow(ctx, query,
		d.UserID, d.Amount, d.DepositDate, d.AddedBy, d.Notes))
	if err != nil {
		return nil, fmt.Errorf("insert deposit: %w", err)
	}
	return created, nil
}

func (s *DepositStore) List(ctx context.Context, limit int) ([]models.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	defer rows.Close()

	deposits := make([]models.Deposit, 0)
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deposit: %w", err)
		}
		deposits = append(deposits, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deposits: %w", err)
	}
	return deposits, nil
}

func (s *DepositStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM deposits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deposit: %w", err)
	}
	return nil
}

func (s *DepositStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM deposits WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete deposits by user: %w", err)
	}
	return nil
}

func (s *DepositStore) DeleteAll(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM deposits`)
	if err != nil {
		return fmt.Errorf("delete all deposits: %w", err)
	}
	return nil
}
