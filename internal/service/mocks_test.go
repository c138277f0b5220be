package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/arefin-dev/messwallet/internal/models"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, email, passwordHash string) (*models.Account, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, userID uuid.UUID, fullName, email string, phone *string) (*models.Profile, error) {
	args := m.Called(ctx, userID, fullName, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileRepository) UpdateInfo(ctx context.Context, userID uuid.UUID, fullName string, phone *string) error {
	args := m.Called(ctx, userID, fullName, phone)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	args := m.Called(ctx, userID, avatarURL)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateSerialPosition(ctx context.Context, userID uuid.UUID, position int) error {
	args := m.Called(ctx, userID, position)
	return args.Error(0)
}

func (m *MockProfileRepository) MarkWelcomeShown(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockRoleRepository is a mock implementation of RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Create(ctx context.Context, userID uuid.UUID, role models.Role, assignedBy *uuid.UUID) (*models.UserRole, error) {
	args := m.Called(ctx, userID, role, assignedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRole), args.Error(1)
}

func (m *MockRoleRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRole), args.Error(1)
}

func (m *MockRoleRepository) List(ctx context.Context) ([]models.UserRole, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserRole), args.Error(1)
}

func (m *MockRoleRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role, assignedBy uuid.UUID) error {
	args := m.Called(ctx, userID, role, assignedBy)
	return args.Error(0)
}

func (m *MockRoleRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) List(ctx context.Context, limit int) ([]models.Expense, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteByPayer(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]models.ExpenseCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExpenseCategory), args.Error(1)
}

// MockDepositRepository is a mock implementation of DepositRepository.
type MockDepositRepository struct {
	mock.Mock
}

func (m *MockDepositRepository) Create(ctx context.Context, d *models.Deposit) (*models.Deposit, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deposit), args.Error(1)
}

func (m *MockDepositRepository) List(ctx context.Context, limit int) ([]models.Deposit, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Deposit), args.Error(1)
}

func (m *MockDepositRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDepositRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockDepositRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMealRepository is a mock implementation of MealRepository.
type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) GetByUserDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Meal, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Meal, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

func (m *MockMealRepository) ListByMonth(ctx context.Context, month, year int) ([]models.Meal, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

func (m *MockMealRepository) ListAll(ctx context.Context) ([]models.Meal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

func (m *MockMealRepository) Create(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	args := m.Called(ctx, meal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealRepository) Update(ctx context.Context, id uuid.UUID, lunch, dinner bool, markedBy uuid.UUID) error {
	args := m.Called(ctx, id, lunch, dinner, markedBy)
	return args.Error(0)
}

func (m *MockMealRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockMealRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockBudgetRepository is a mock implementation of BudgetRepository.
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) List(ctx context.Context) ([]models.MonthlyBudget, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MonthlyBudget), args.Error(1)
}

func (m *MockBudgetRepository) GetByMonthYear(ctx context.Context, month, year int) (*models.MonthlyBudget, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyBudget), args.Error(1)
}

func (m *MockBudgetRepository) Create(ctx context.Context, b *models.MonthlyBudget) (*models.MonthlyBudget, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyBudget), args.Error(1)
}

func (m *MockBudgetRepository) Update(ctx context.Context, id uuid.UUID, budgetAmount, lowBalanceThreshold float64) error {
	args := m.Called(ctx, id, budgetAmount, lowBalanceThreshold)
	return args.Error(0)
}

func (m *MockBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockChatRepository is a mock implementation of ChatRepository.
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) CreateMessage(ctx context.Context, senderID uuid.UUID, content *string) (*models.ChatMessage, error) {
	args := m.Called(ctx, senderID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatMessage), args.Error(1)
}

func (m *MockChatRepository) ListMessages(ctx context.Context) ([]models.ChatMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockChatRepository) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChatRepository) DeleteAllMessages(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockChatRepository) CreateImage(ctx context.Context, messageID uuid.UUID, imageURL string) (*models.ChatMessageImage, error) {
	args := m.Called(ctx, messageID, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatMessageImage), args.Error(1)
}

func (m *MockChatRepository) ListImagesByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]models.ChatMessageImage, error) {
	args := m.Called(ctx, messageIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessageImage), args.Error(1)
}

func (m *MockChatRepository) ListImagesByMessage(ctx context.Context, messageID uuid.UUID) ([]models.ChatMessageImage, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessageImage), args.Error(1)
}

func (m *MockChatRepository) ListAllImages(ctx context.Context) ([]models.ChatMessageImage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessageImage), args.Error(1)
}

func (m *MockChatRepository) GetReaction(ctx context.Context, messageID, userID uuid.UUID, reaction string) (*models.ChatReaction, error) {
	args := m.Called(ctx, messageID, userID, reaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatReaction), args.Error(1)
}

func (m *MockChatRepository) CreateReaction(ctx context.Context, messageID, userID uuid.UUID, reaction string) (*models.ChatReaction, error) {
	args := m.Called(ctx, messageID, userID, reaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatReaction), args.Error(1)
}

func (m *MockChatRepository) DeleteReaction(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChatRepository) ListReactionsByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]models.ChatReaction, error) {
	args := m.Called(ctx, messageIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatReaction), args.Error(1)
}

func (m *MockChatRepository) UpsertSeen(ctx context.Context, messageID, userID uuid.UUID) error {
	args := m.Called(ctx, messageID, userID)
	return args.Error(0)
}

func (m *MockChatRepository) ListSeenByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]models.ChatSeen, error) {
	args := m.Called(ctx, messageIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatSeen), args.Error(1)
}

// MockMaintenanceRepository is a mock implementation of MaintenanceRepository.
type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) DeleteAllSharedBills(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) DeleteAllAuditLogs(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockBroadcaster is a mock implementation of Broadcaster.
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(ctx context.Context, title, message, notifType string) error {
	args := m.Called(ctx, title, message, notifType)
	return args.Error(0)
}

// MockBlobStore is a mock implementation of storage.BlobStore.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, bucket, key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Remove(ctx context.Context, bucket string, keys []string) error {
	args := m.Called(ctx, bucket, keys)
	return args.Error(0)
}

func (m *MockBlobStore) KeyFromURL(bucket, url string) string {
	args := m.Called(bucket, url)
	return args.String(0)
}

// MockChangePublisher is a mock implementation of ChangePublisher.
type MockChangePublisher struct {
	mock.Mock
}

func (m *MockChangePublisher) Publish(ctx context.Context, table, action string) {
	m.Called(ctx, table, action)
}
