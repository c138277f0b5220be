package finance

import (
	"math"
	"testing"
	"time"

	"github.com/arefin-dev/messwallet/internal/models"
)

func deposit(amount float64) models.Deposit {
	return models.Deposit{Amount: amount}
}

func expense(amount float64, date time.Time) models.Expense {
	return models.Expense{Amount: amount, ExpenseDate: date}
}

func TestComputeStats(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	tests := []struct {
		name        string
		deposits    []models.Deposit
		expenses    []models.Expense
		budget      *models.MonthlyBudget
		memberCount int
		validate    func(t *testing.T, s models.FinanceStats)
	}{
		{
			name:     "balance is deposits minus expenses",
			deposits: []models.Deposit{deposit(5000), deposit(2500)},
			expenses: []models.Expense{expense(1200, yesterday), expense(800, today)},
			budget:   nil, memberCount: 4,
			validate: func(t *testing.T, s models.FinanceStats) {
				if s.TotalDeposit != 7500 {
					t.Errorf("TotalDeposit = %v, want 7500", s.TotalDeposit)
				}
				if s.TotalExpense != 2000 {
					t.Errorf("TotalExpense = %v, want 2000", s.TotalExpense)
				}
				if s.Balance != 5500 {
					t.Errorf("Balance = %v, want 5500", s.Balance)
				}
				if s.TodayExpense != 800 {
					t.Errorf("TodayExpense = %v, want 800", s.TodayExpense)
				}
			},
		},
		{
			name:     "threshold defaults to 5000 with no budget row",
			deposits: []models.Deposit{deposit(4000)},
			expenses: nil,
			budget:   nil, memberCount: 3,
			validate: func(t *testing.T, s models.FinanceStats) {
				if s.LowBalanceThreshold != 5000 {
					t.Errorf("LowBalanceThreshold = %v, want 5000", s.LowBalanceThreshold)
				}
				if !s.LowBalance {
					t.Error("balance 4000 under default threshold 5000 should flag LowBalance")
				}
				if s.MonthlyBudget != 0 {
					t.Errorf("MonthlyBudget = %v, want 0", s.MonthlyBudget)
				}
			},
		},
		{
			name:     "budget row supplies threshold",
			deposits: []models.Deposit{deposit(4000)},
			expenses: nil,
			budget: &models.MonthlyBudget{
				BudgetAmount:        20000,
				LowBalanceThreshold: 3000,
			},
			memberCount: 3,
			validate: func(t *testing.T, s models.FinanceStats) {
				if s.LowBalance {
					t.Error("balance 4000 over threshold 3000 should not flag LowBalance")
				}
				if s.MonthlyBudget != 20000 {
					t.Errorf("MonthlyBudget = %v, want 20000", s.MonthlyBudget)
				}
			},
		},
		{
			name:     "balance equal to threshold is not low",
			deposits: []models.Deposit{deposit(5000)},
			expenses: nil,
			budget:   nil, memberCount: 1,
			validate: func(t *testing.T, s models.FinanceStats) {
				if s.LowBalance {
					t.Error("balance == threshold should not flag LowBalance")
				}
			},
		},
		{
			name:     "per-head cost rounds and survives zero members",
			deposits: nil,
			expenses: []models.Expense{expense(1000, yesterday)},
			budget:   nil, memberCount: 0,
			validate: func(t *testing.T, s models.FinanceStats) {
				if s.PerHeadCost != 0 {
					t.Errorf("PerHeadCost with 0 members = %v, want 0", s.PerHeadCost)
				}
			},
		},
		{
			name:     "per-head cost with members",
			deposits: nil,
			expenses: []models.Expense{expense(1000, yesterday)},
			budget:   nil, memberCount: 3,
			validate: func(t *testing.T, s models.FinanceStats) {
				if math.Abs(s.PerHeadCost-333) > 0.001 {
					t.Errorf("PerHeadCost = %v, want 333", s.PerHeadCost)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(tt.deposits, tt.expenses, tt.budget, tt.memberCount, today)
			tt.validate(t, stats)
		})
	}
}
