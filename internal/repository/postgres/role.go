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

type RoleStore struct {
	pool *pgxpool.Pool
}

func NewRoleStore(pool *pgxpool.Pool) *RoleStore {
	return &RoleStore{pool: pool}
}

const roleColumns = `id, user_id, role, assigned_by, created_at, updated_at`

func scanRole(row pgx.Row) (*models.UserRole, error) {
	var r models.UserRole
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Role,
		&r.AssignedBy,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RoleStore) Create(ctx context.Context, userID uuid.UUID, role models.Role, assignedBy *uuid.UUID) (*models.UserRole, error) {
	query := `
		INSERT INTO user_roles (user_id, role, assigned_by, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING ` + roleColumns

	r, err := scanRole(s.pool.QueryRow(ctx, query, userID, role, assignedBy))
	if err != nil {
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return r, nil
}

func (s *RoleStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserRole, error) {
	query := `SELECT ` + roleColumns + ` FROM user_roles WHERE user_id = $1`

	r, err := scanRole(s.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return r, nil
}

func (s *RoleStore) List(ctx context.Context) ([]models.UserRole, error) {
	query := `SELECT ` + roleColumns + ` FROM user_roles`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := make([]models.UserRole, 0)
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return roles, nil
}

func (s *RoleStore) UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role, assignedBy uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE user_roles SET role = $2, assigned_by = $3, updated_at = now() WHERE user_id = $1`,
		userID, role, assignedBy)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

func (s *RoleStore) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}
