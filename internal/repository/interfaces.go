package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arefin-dev/messwallet/internal/models"
)

// Every method takes ctx so request cancellation propagates into the query.
// Single-row reads return nil, nil when no row matches; list reads return an
// empty slice (not nil) so JSON serializes to [].

// AccountRepository handles the authentication principals.
type AccountRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// ProfileRepository handles housemate profile rows.
type ProfileRepository interface {
	Create(ctx context.Context, userID uuid.UUID, fullName, email string, phone *string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Count(ctx context.Context) (int, error)
	UpdateInfo(ctx context.Context, userID uuid.UUID, fullName string, phone *string) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error
	UpdateSerialPosition(ctx context.Context, userID uuid.UUID, position int) error
	MarkWelcomeShown(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// RoleRepository handles the one-role-per-user assignment rows.
type RoleRepository interface {
	Create(ctx context.Context, userID uuid.UUID, role models.Role, assignedBy *uuid.UUID) (*models.UserRole, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserRole, error)
	List(ctx context.Context) ([]models.UserRole, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role, assignedBy uuid.UUID) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// ExpenseRepository handles expense rows. Aggregation happens in Go over
// the fetched rows, never in SQL.
type ExpenseRepository interface {
	Create(ctx context.Context, e *models.Expense) (*models.Expense, error)
	// List returns expenses newest first; limit <= 0 means all rows.
	List(ctx context.Context, limit int) ([]models.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPayer(ctx context.Context, userID uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

// CategoryRepository serves the seeded expense categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.ExpenseCategory, error)
}

// DepositRepository handles deposit rows.
type DepositRepository interface {
	Create(ctx context.Context, d *models.Deposit) (*models.Deposit, error)
	List(ctx context.Context, limit int) ([]models.Deposit, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

// MealRepository handles attendance rows keyed on (user, date).
type MealRepository interface {
	GetByUserDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Meal, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Meal, error)
	ListByMonth(ctx context.Context, month, year int) ([]models.Meal, error)
	ListAll(ctx context.Context) ([]models.Meal, error)
	Create(ctx context.Context, m *models.Meal) (*models.Meal, error)
	Update(ctx context.Context, id uuid.UUID, lunch, dinner bool, markedBy uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

// BudgetRepository handles the at-most-one-per-(month,year) budget rows.
type BudgetRepository interface {
	List(ctx context.Context) ([]models.MonthlyBudget, error)
	GetByMonthYear(ctx context.Context, month, year int) (*models.MonthlyBudget, error)
	Create(ctx context.Context, b *models.MonthlyBudget) (*models.MonthlyBudget, error)
	Update(ctx context.Context, id uuid.UUID, budgetAmount, lowBalanceThreshold float64) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

// NotificationRepository handles per-recipient notification rows.
// Broadcast is a loop of independent inserts, one row per recipient.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

// ChatRepository handles messages and their child rows. Children are
// fetched by message-id set and joined in memory by the service.
type ChatRepository interface {
	CreateMessage(ctx context.Context, senderID uuid.UUID, content *string) (*models.ChatMessage, error)
	ListMessages(ctx context.Context) ([]models.ChatMessage, error)
	DeleteMessage(ctx context.Context, id uuid.UUID) error
	DeleteAllMessages(ctx context.Context) error

	CreateImage(ctx context.Context, messageID uuid.UUID, imageURL string) (*models.ChatMessageImage, error)
	ListImagesByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]models.ChatMessageImage, error)
	ListImagesByMessage(ctx context.Context, messageID uuid.UUID) ([]models.ChatMessageImage, error)
	ListAllImages(ctx context.Context) ([]models.ChatMessageImage, error)

	GetReaction(ctx context.Context, messageID, userID uuid.UUID, reaction string) (*models.ChatReaction, error)
	CreateReaction(ctx context.Context, messageID, userID uuid.UUID, reaction string) (*models.ChatReaction, error)
	DeleteReaction(ctx context.Context, id uuid.UUID) error
	ListReactionsByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]models.ChatReaction, error)

	UpsertSeen(ctx context.Context, messageID, userID uuid.UUID) error
	ListSeenByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]models.ChatSeen, error)
}

// MaintenanceRepository covers the tables touched only by the admin
// bulk-delete (shared bills, audit log).
type MaintenanceRepository interface {
	DeleteAllSharedBills(ctx context.Context) error
	DeleteAllAuditLogs(ctx context.Context) error
}
