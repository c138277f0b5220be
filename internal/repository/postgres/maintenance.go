package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MaintenanceStore covers the tables only the admin bulk-delete touches.
type MaintenanceStore struct {
	pool *pgxpool.Pool
}

func NewMaintenanceStore(pool *pgxpool.Pool) *MaintenanceStore {
	return &MaintenanceStore{pool: pool}
}

func (s *MaintenanceStore) DeleteAllSharedBills(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM shared_bills`)
	if err != nil {
		return fmt.Errorf("delete all shared bills: %w", err)
	}
	return nil
}

func (s *MaintenanceStore) DeleteAllAuditLogs(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM audit_log`)
	if err != nil {
		return fmt.Errorf("delete all audit logs: %w", err)
	}
	return nil
}
