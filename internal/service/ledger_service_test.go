package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/cache"
	"github.com/arefin-dev/messwallet/internal/models"
)

func newTestLedgerService(
	deposits *MockDepositRepository,
	expenses *MockExpenseRepository,
	profiles *MockProfileRepository,
	budgets *MockBudgetRepository,
	categories *MockCategoryRepository,
	broadcaster *MockBroadcaster,
) *LedgerService {
	return NewLedgerService(deposits, expenses, profiles, budgets, categories,
		broadcaster, cache.New(nil), zap.NewNop())
}

func adminPrincipal() Principal {
	return Principal{UserID: uuid.New(), Email: "admin@example.com", Role: models.RoleSecondaryAdmin}
}

func memberPrincipal() Principal {
	return Principal{UserID: uuid.New(), Email: "member@example.com", Role: models.RoleMember}
}

func roster(n int) []models.Profile {
	profiles := make([]models.Profile, n)
	for i := range profiles {
		profiles[i] = models.Profile{
			ID:       uuid.New(),
			UserID:   uuid.New(),
			FullName: "Member",
		}
	}
	return profiles
}

func TestLedgerService_CreateDeposit_NonAdmin(t *testing.T) {
	deposits := new(MockDepositRepository)
	expenses := new(MockExpenseRepository)
	profiles := new(MockProfileRepository)
	budgets := new(MockBudgetRepository)
	categories := new(MockCategoryRepository)
	broadcaster := new(MockBroadcaster)

	svc := newTestLedgerService(deposits, expenses, profiles, budgets, categories, broadcaster)

	_, err := svc.CreateDeposit(context.Background(), memberPrincipal(), CreateDepositInput{
		UserID: uuid.New(),
		Amount: 500,
	})

	assert.ErrorIs(t, err, ErrAdminOnly)
	deposits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerService_CreateDeposit_InvalidAmount(t *testing.T) {
	deposits := new(MockDepositRepository)
	svc := newTestLedgerService(deposits, new(MockExpenseRepository), new(MockProfileRepository),
		new(MockBudgetRepository), new(MockCategoryRepository), new(MockBroadcaster))

	_, err := svc.CreateDeposit(context.Background(), adminPrincipal(), CreateDepositInput{
		UserID: uuid.New(),
		Amount: 0,
	})

	assert.ErrorIs(t, err, ErrInvalidAmount)
	deposits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLedgerService_CreateDeposit_Broadcasts(t *testing.T) {
	deposits := new(MockDepositRepository)
	profiles := new(MockProfileRepository)
	broadcaster := new(MockBroadcaster)
	svc := newTestLedgerService(deposits, new(MockExpenseRepository), profiles,
		new(MockBudgetRepository), new(MockCategoryRepository), broadcaster)

	target := uuid.New()
	deposits.On("Create", mock.Anything, mock.AnythingOfType("*models.Deposit")).
		Return(&models.Deposit{ID: uuid.New(), UserID: target, Amount: 1500}, nil)
	profiles.On("GetByUserID", mock.Anything, target).
		Return(&models.Profile{UserID: target, FullName: "Rahim"}, nil)
	broadcaster.On("Broadcast", mock.Anything, "New Deposit Added", "Rahim deposited ৳1500", "success").
		Return(nil)

	created, err := svc.CreateDeposit(context.Background(), adminPrincipal(), CreateDepositInput{
		UserID: target,
		Amount: 1500,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1500.0, created.Amount)
	broadcaster.AssertExpectations(t)
}

func TestLedgerService_BulkDeposit_EqualShares(t *testing.T) {
	deposits := new(MockDepositRepository)
	profiles := new(MockProfileRepository)
	broadcaster := new(MockBroadcaster)
	svc := newTestLedgerService(deposits, new(MockExpenseRepository), profiles,
		new(MockBudgetRepository), new(MockCategoryRepository), broadcaster)

	members := roster(5)
	profiles.On("List", mock.Anything).Return(members, nil)

	var amounts []float64
	deposits.On("Create", mock.Anything, mock.AnythingOfType("*models.Deposit")).
		Run(func(args mock.Arguments) {
			d := args.Get(1).(*models.Deposit)
			amounts = append(amounts, d.Amount)
		}).
		Return(&models.Deposit{ID: uuid.New(), Amount: 600}, nil)
	broadcaster.On("Broadcast", mock.Anything, "New Deposit Added", mock.AnythingOfType("string"), "success").
		Return(nil)

	created, err := svc.BulkDeposit(context.Background(), adminPrincipal(), 3000, nil)

	assert.NoError(t, err)
	assert.Len(t, created, 5)
	assert.Equal(t, []float64{600, 600, 600, 600, 600}, amounts)
	// One broadcast for the whole batch, not one per member.
	broadcaster.AssertNumberOfCalls(t, "Broadcast", 1)
}

func TestLedgerService_BulkDeposit_MidBatchFailure(t *testing.T) {
	deposits := new(MockDepositRepository)
	profiles := new(MockProfileRepository)
	broadcaster := new(MockBroadcaster)
	svc := newTestLedgerService(deposits, new(MockExpenseRepository), profiles,
		new(MockBudgetRepository), new(MockCategoryRepository), broadcaster)

	members := roster(3)
	profiles.On("List", mock.Anything).Return(members, nil)

	deposits.On("Create", mock.Anything, mock.AnythingOfType("*models.Deposit")).
		Return(&models.Deposit{ID: uuid.New(), Amount: 300}, nil).Twice()
	deposits.On("Create", mock.Anything, mock.AnythingOfType("*models.Deposit")).
		Return(nil, errors.New("connection reset")).Once()

	created, err := svc.BulkDeposit(context.Background(), adminPrincipal(), 900, nil)

	// The first two rows stay committed; no broadcast for a failed batch.
	assert.Error(t, err)
	assert.Len(t, created, 2)
	broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerService_BulkDeposit_NonAdmin(t *testing.T) {
	deposits := new(MockDepositRepository)
	profiles := new(MockProfileRepository)
	svc := newTestLedgerService(deposits, new(MockExpenseRepository), profiles,
		new(MockBudgetRepository), new(MockCategoryRepository), new(MockBroadcaster))

	_, err := svc.BulkDeposit(context.Background(), memberPrincipal(), 3000, nil)

	assert.ErrorIs(t, err, ErrAdminOnly)
	profiles.AssertNotCalled(t, "List", mock.Anything)
	deposits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLedgerService_CreateExpense_AnyMember(t *testing.T) {
	expenses := new(MockExpenseRepository)
	profiles := new(MockProfileRepository)
	broadcaster := new(MockBroadcaster)
	svc := newTestLedgerService(new(MockDepositRepository), expenses, profiles,
		new(MockBudgetRepository), new(MockCategoryRepository), broadcaster)

	p := memberPrincipal()
	expenses.On("Create", mock.Anything, mock.AnythingOfType("*models.Expense")).
		Return(&models.Expense{ID: uuid.New(), ItemName: "Rice", Amount: 1200}, nil)
	profiles.On("GetByUserID", mock.Anything, p.UserID).
		Return(&models.Profile{UserID: p.UserID, FullName: "Karim"}, nil)
	broadcaster.On("Broadcast", mock.Anything, "New Expense Added", mock.AnythingOfType("string"), "info").
		Return(nil)

	created, err := svc.CreateExpense(context.Background(), p, CreateExpenseInput{
		ItemName: "Rice",
		Amount:   1200,
		PaidBy:   p.UserID,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Rice", created.ItemName)
	broadcaster.AssertExpectations(t)
}

func TestLedgerService_SplitExpense(t *testing.T) {
	expenses := new(MockExpenseRepository)
	profiles := new(MockProfileRepository)
	broadcaster := new(MockBroadcaster)
	svc := newTestLedgerService(new(MockDepositRepository), expenses, profiles,
		new(MockBudgetRepository), new(MockCategoryRepository), broadcaster)

	members := roster(3)
	profiles.On("List", mock.Anything).Return(members, nil)

	var rows []models.Expense
	expenses.On("Create", mock.Anything, mock.AnythingOfType("*models.Expense")).
		Run(func(args mock.Arguments) {
			rows = append(rows, *args.Get(1).(*models.Expense))
		}).
		Return(&models.Expense{ID: uuid.New(), Amount: 300}, nil)
	broadcaster.On("Broadcast", mock.Anything, "New Expense Added", mock.AnythingOfType("string"), "info").
		Return(nil)

	created, err := svc.SplitExpense(context.Background(), adminPrincipal(), CreateExpenseInput{
		ItemName: "Gas Cylinder",
		Amount:   900,
	})

	assert.NoError(t, err)
	assert.Len(t, created, 3)
	for i, row := range rows {
		assert.Equal(t, "Gas Cylinder (Split)", row.ItemName)
		assert.Equal(t, 300.0, row.Amount)
		assert.Equal(t, members[i].UserID, row.PaidBy)
		assert.Equal(t, "Split from ৳900 among 3 members.", *row.Notes)
	}
}

func TestLedgerService_SplitExpense_UnevenAmount(t *testing.T) {
	expenses := new(MockExpenseRepository)
	profiles := new(MockProfileRepository)
	broadcaster := new(MockBroadcaster)
	svc := newTestLedgerService(new(MockDepositRepository), expenses, profiles,
		new(MockBudgetRepository), new(MockCategoryRepository), broadcaster)

	profiles.On("List", mock.Anything).Return(roster(3), nil)

	var amounts []float64
	expenses.On("Create", mock.Anything, mock.AnythingOfType("*models.Expense")).
		Run(func(args mock.Arguments) {
			amounts = append(amounts, args.Get(1).(*models.Expense).Amount)
		}).
		Return(&models.Expense{ID: uuid.New()}, nil)
	broadcaster.On("Broadcast", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil)

	_, err := svc.SplitExpense(context.Background(), adminPrincipal(), CreateExpenseInput{
		ItemName: "Internet",
		Amount:   100,
	})

	assert.NoError(t, err)
	// 100/3 rounds to 33.33 per head; the remainder is not redistributed.
	assert.Equal(t, []float64{33.33, 33.33, 33.33}, amounts)
}

func TestLedgerService_SplitExpense_MidBatchFailure(t *testing.T) {
	expenses := new(MockExpenseRepository)
	profiles := new(MockProfileRepository)
	svc := newTestLedgerService(new(MockDepositRepository), expenses, profiles,
		new(MockBudgetRepository), new(MockCategoryRepository), new(MockBroadcaster))

	profiles.On("List", mock.Anything).Return(roster(3), nil)
	expenses.On("Create", mock.Anything, mock.AnythingOfType("*models.Expense")).
		Return(&models.Expense{ID: uuid.New()}, nil).Twice()
	expenses.On("Create", mock.Anything, mock.AnythingOfType("*models.Expense")).
		Return(nil, errors.New("insert failed")).Once()

	created, err := svc.SplitExpense(context.Background(), adminPrincipal(), CreateExpenseInput{
		ItemName: "Cleaning",
		Amount:   900,
	})

	assert.Error(t, err)
	assert.Len(t, created, 2)
}

func TestLedgerService_DeleteExpense_NonAdmin(t *testing.T) {
	expenses := new(MockExpenseRepository)
	svc := newTestLedgerService(new(MockDepositRepository), expenses, new(MockProfileRepository),
		new(MockBudgetRepository), new(MockCategoryRepository), new(MockBroadcaster))

	err := svc.DeleteExpense(context.Background(), memberPrincipal(), uuid.New())

	assert.ErrorIs(t, err, ErrAdminOnly)
	expenses.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLedgerService_Stats(t *testing.T) {
	deposits := new(MockDepositRepository)
	expenses := new(MockExpenseRepository)
	profiles := new(MockProfileRepository)
	budgets := new(MockBudgetRepository)
	svc := newTestLedgerService(deposits, expenses, profiles, budgets,
		new(MockCategoryRepository), new(MockBroadcaster))

	deposits.On("List", mock.Anything, 0).Return([]models.Deposit{
		{Amount: 5000}, {Amount: 3000},
	}, nil)
	expenses.On("List", mock.Anything, 0).Return([]models.Expense{
		{Amount: 2000}, {Amount: 1500},
	}, nil)
	profiles.On("Count", mock.Anything).Return(4, nil)
	budgets.On("GetByMonthYear", mock.Anything, mock.AnythingOfType("int"), mock.AnythingOfType("int")).
		Return(nil, nil)

	stats, err := svc.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 8000.0, stats.TotalDeposit)
	assert.Equal(t, 3500.0, stats.TotalExpense)
	assert.Equal(t, 4500.0, stats.Balance)
	// 5000 default threshold applies when no budget row exists.
	assert.True(t, stats.LowBalance)
}
