// Package service holds the application rules between the HTTP handlers and
// the repositories: authorization preconditions, aggregation over fetched
// rows, and the fan-out writes (broadcast notifications, split expenses,
// bulk deposits, cascading deletes). Fan-outs are sequences of independent
// writes with no rollback; a mid-sequence failure leaves earlier writes
// committed.
package service

import (
	"github.com/google/uuid"

	"github.com/arefin-dev/messwallet/internal/models"
)

// Principal is the authenticated caller, passed explicitly into every
// operation that needs identity or role. Capability checks go through the
// role's predicates, never ad-hoc string comparison.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   models.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}

func (p Principal) IsFounder() bool {
	return p.Role.IsFounder()
}
