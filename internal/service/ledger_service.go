package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/cache"
	"github.com/arefin-dev/messwallet/internal/finance"
	"github.com/arefin-dev/messwallet/internal/models"
	"github.com/arefin-dev/messwallet/internal/repository"
)

// Broadcaster fans a notification out to every profile.
type Broadcaster interface {
	Broadcast(ctx context.Context, title, message, notifType string) error
}

const statsCacheTTL = 30 * time.Second

// LedgerService owns deposits, expenses, and the finance aggregate. Deposit
// writes are admin-gated; expense writes are open to every member. Split
// and bulk variants are loops of independent inserts with no rollback.
type LedgerService struct {
	deposits   repository.DepositRepository
	expenses   repository.ExpenseRepository
	profiles   repository.ProfileRepository
	budgets    repository.BudgetRepository
	categories repository.CategoryRepository

	broadcaster Broadcaster
	cache       *cache.Client
	logger      *zap.Logger
}

func NewLedgerService(
	deposits repository.DepositRepository,
	expenses repository.ExpenseRepository,
	profiles repository.ProfileRepository,
	budgets repository.BudgetRepository,
	categories repository.CategoryRepository,
	broadcaster Broadcaster,
	cacheClient *cache.Client,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		deposits:    deposits,
		expenses:    expenses,
		profiles:    profiles,
		budgets:     budgets,
		categories:  categories,
		broadcaster: broadcaster,
		cache:       cacheClient,
		logger:      logger,
	}
}

func profileLookup(profiles []models.Profile) map[uuid.UUID]models.Profile {
	m := make(map[uuid.UUID]models.Profile, len(profiles))
	for _, p := range profiles {
		m[p.UserID] = p
	}
	return m
}

// ListDeposits returns deposits newest first, joined against the profile
// map for display names and avatars.
func (s *LedgerService) ListDeposits(ctx context.Context, limit int) ([]models.Deposit, error) {
	deposits, err := s.deposits.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	lookup := profileLookup(profiles)

	for i := range deposits {
		if p, ok := lookup[deposits[i].UserID]; ok {
			deposits[i].UserName = p.FullName
			deposits[i].UserAvatar = p.AvatarURL
		}
		if p, ok := lookup[deposits[i].AddedBy]; ok {
			deposits[i].AddedByName = p.FullName
			deposits[i].AddedByAvatar = p.AvatarURL
		}
	}
	return deposits, nil
}

type CreateDepositInput struct {
	UserID      uuid.UUID
	Amount      float64
	DepositDate time.Time
	Notes       *string
}

func (s *LedgerService) CreateDeposit(ctx context.Context, p Principal, in CreateDepositInput) (*models.Deposit, error) {
	if !p.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.DepositDate.IsZero() {
		in.DepositDate = time.Now()
	}

	deposit, err := s.deposits.Create(ctx, &models.Deposit{
		UserID:      in.UserID,
		Amount:      in.Amount,
		DepositDate: in.DepositDate,
		AddedBy:     p.UserID,
		Notes:       in.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)

	depositorName := "Someone"
	if profile, err := s.profiles.GetByUserID(ctx, in.UserID); err == nil && profile != nil {
		depositorName = profile.FullName
	}
	message := fmt.Sprintf("%s deposited ৳%g", depositorName, in.Amount)
	if err := s.broadcaster.Broadcast(ctx, "New Deposit Added", message, "success"); err != nil {
		// Best effort: the deposit row is already committed.
		s.logger.Warn("deposit notification broadcast failed", zap.Error(err))
	}

	return deposit, nil
}

// BulkDeposit credits every member with an equal share of the total. One
// independent insert per member, then a single broadcast: memberCount
// deposit rows plus memberCount notification rows, no grouping transaction.
func (s *LedgerService) BulkDeposit(ctx context.Context, p Principal, amount float64, notes *string) ([]models.Deposit, error) {
	if !p.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrNoMembers
	}

	share, err := finance.EqualShare(amount, len(profiles))
	if err != nil {
		return nil, err
	}

	created := make([]models.Deposit, 0, len(profiles))
	for _, profile := range profiles {
		deposit, err := s.deposits.Create(ctx, &models.Deposit{
			UserID:      profile.UserID,
			Amount:      share,
			DepositDate: time.Now(),
			AddedBy:     p.UserID,
			Notes:       notes,
		})
		if err != nil {
			return created, fmt.Errorf("bulk deposit for %s: %w", profile.UserID, err)
		}
		created = append(created, *deposit)
	}

	s.invalidateStats(ctx)

	message := fmt.Sprintf("Bulk deposit of ৳%g added (৳%g per member)", amount, share)
	if err := s.broadcaster.Broadcast(ctx, "New Deposit Added", message, "success"); err != nil {
		s.logger.Warn("bulk deposit broadcast failed", zap.Error(err))
	}

	return created, nil
}

func (s *LedgerService) DeleteDeposit(ctx context.Context, p Principal, id uuid.UUID) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}
	if err := s.deposits.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *LedgerService) ListExpenses(ctx context.Context, limit int) ([]models.Expense, error) {
	expenses, err := s.expenses.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	lookup := profileLookup(profiles)
	categoryByID := make(map[uuid.UUID]models.ExpenseCategory, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	for i := range expenses {
		if p, ok := lookup[expenses[i].PaidBy]; ok {
			expenses[i].PaidByName = p.FullName
			expenses[i].PaidByAvatar = p.AvatarURL
		}
		if p, ok := lookup[expenses[i].AddedBy]; ok {
			expenses[i].AddedByName = p.FullName
			expenses[i].AddedByAvatar = p.AvatarURL
		}
		if expenses[i].CategoryID != nil {
			if c, ok := categoryByID[*expenses[i].CategoryID]; ok {
				expenses[i].CategoryName = c.Name
				expenses[i].CategoryNameBn = c.NameBn
			}
		}
	}
	return expenses, nil
}

func (s *LedgerService) ListCategories(ctx context.Context) ([]models.ExpenseCategory, error) {
	return s.categories.List(ctx)
}

type CreateExpenseInput struct {
	CategoryID  *uuid.UUID
	ItemName    string
	Amount      float64
	Quantity    *float64
	Unit        *string
	PaidBy      uuid.UUID
	ExpenseDate time.Time
	ExpenseType string
	IsEmergency bool
	Notes       *string
}

func (s *LedgerService) CreateExpense(ctx context.Context, p Principal, in CreateExpenseInput) (*models.Expense, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.ExpenseDate.IsZero() {
		in.ExpenseDate = time.Now()
	}
	if in.ExpenseType == "" {
		in.ExpenseType = "market"
	}

	expense, err := s.expenses.Create(ctx, &models.Expense{
		CategoryID:  in.CategoryID,
		ItemName:    in.ItemName,
		Amount:      in.Amount,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		PaidBy:      in.PaidBy,
		AddedBy:     p.UserID,
		ExpenseDate: in.ExpenseDate,
		ExpenseType: in.ExpenseType,
		IsEmergency: in.IsEmergency,
		Notes:       in.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)

	adderName := "Someone"
	if profile, err := s.profiles.GetByUserID(ctx, p.UserID); err == nil && profile != nil {
		adderName = profile.FullName
	}
	message := fmt.Sprintf("%s added an expense: %s - ৳%g", adderName, in.ItemName, in.Amount)
	if err := s.broadcaster.Broadcast(ctx, "New Expense Added", message, "info"); err != nil {
		s.logger.Warn("expense notification broadcast failed", zap.Error(err))
	}

	return expense, nil
}

// SplitExpense divides the total equally among all members and inserts one
// expense row per member as payer, each named "<item> (Split)". Inserts are
// independent; a failure partway returns the rows created so far, which
// stay committed.
func (s *LedgerService) SplitExpense(ctx context.Context, p Principal, in CreateExpenseInput) ([]models.Expense, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.ExpenseDate.IsZero() {
		in.ExpenseDate = time.Now()
	}
	if in.ExpenseType == "" {
		in.ExpenseType = "market"
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrNoMembers
	}

	share, err := finance.EqualShare(in.Amount, len(profiles))
	if err != nil {
		return nil, err
	}

	var perQuantity *float64
	if in.Quantity != nil {
		q := *in.Quantity / float64(len(profiles))
		perQuantity = &q
	}

	splitNote := fmt.Sprintf("Split from ৳%g among %d members.", in.Amount, len(profiles))
	if in.Notes != nil && *in.Notes != "" {
		splitNote = splitNote + " " + *in.Notes
	}

	created := make([]models.Expense, 0, len(profiles))
	for _, profile := range profiles {
		expense, err := s.expenses.Create(ctx, &models.Expense{
			CategoryID:  in.CategoryID,
			ItemName:    in.ItemName + " (Split)",
			Amount:      share,
			Quantity:    perQuantity,
			Unit:        in.Unit,
			PaidBy:      profile.UserID,
			AddedBy:     p.UserID,
			ExpenseDate: in.ExpenseDate,
			ExpenseType: in.ExpenseType,
			IsEmergency: in.IsEmergency,
			Notes:       &splitNote,
		})
		if err != nil {
			return created, fmt.Errorf("split expense for %s: %w", profile.UserID, err)
		}
		created = append(created, *expense)
	}

	s.invalidateStats(ctx)

	message := fmt.Sprintf("Expense split among %d members (৳%g each): %s", len(profiles), share, in.ItemName)
	if err := s.broadcaster.Broadcast(ctx, "New Expense Added", message, "info"); err != nil {
		s.logger.Warn("split expense broadcast failed", zap.Error(err))
	}

	return created, nil
}

func (s *LedgerService) DeleteExpense(ctx context.Context, p Principal, id uuid.UUID) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}
	if err := s.expenses.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// Stats reduces all deposit and expense rows in Go, 4 fetches and a fold,
// the same shape the dashboard always computed. Served through the
// fail-safe cache; mutations invalidate.
func (s *LedgerService) Stats(ctx context.Context) (*models.FinanceStats, error) {
	if raw, _ := s.cache.Get(ctx, cache.KeyFinanceStats); raw != nil {
		var stats models.FinanceStats
		if err := json.Unmarshal(raw, &stats); err == nil {
			return &stats, nil
		}
	}

	deposits, err := s.deposits.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	memberCount, err := s.profiles.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	budget, err := s.budgets.GetByMonthYear(ctx, int(now.Month()), now.Year())
	if err != nil {
		return nil, err
	}

	stats := finance.ComputeStats(deposits, expenses, budget, memberCount, now)

	if raw, err := json.Marshal(stats); err == nil {
		s.cache.Set(ctx, cache.KeyFinanceStats, raw, statsCacheTTL)
	}
	return &stats, nil
}

func (s *LedgerService) invalidateStats(ctx context.Context) {
	s.cache.Delete(ctx, cache.KeyFinanceStats)
}
