package finance

import (
	"time"

	"github.com/arefin-dev/messwallet/internal/models"
)

// DefaultLowBalanceThreshold applies when no budget row exists for the
// current month.
const DefaultLowBalanceThreshold = 5000

// ComputeStats reduces the fetched rows into the dashboard aggregate.
// budget may be nil (no row for the current month).
func ComputeStats(deposits []models.Deposit, expenses []models.Expense, budget *models.MonthlyBudget, memberCount int, today time.Time) models.FinanceStats {
	todayStr := today.Format(models.DateLayout)

	var totalDeposit, totalExpense, todayExpense float64
	for _, d := range deposits {
		totalDeposit += d.Amount
	}
	for _, e := range expenses {
		totalExpense += e.Amount
		if e.ExpenseDate.Format(models.DateLayout) == todayStr {
			todayExpense += e.Amount
		}
	}

	var monthlyBudget float64
	threshold := float64(DefaultLowBalanceThreshold)
	if budget != nil {
		monthlyBudget = budget.BudgetAmount
		threshold = budget.LowBalanceThreshold
	}

	balance := totalDeposit - totalExpense

	return models.FinanceStats{
		TotalDeposit:        totalDeposit,
		TotalExpense:        totalExpense,
		Balance:             balance,
		TodayExpense:        todayExpense,
		MonthlyBudget:       monthlyBudget,
		LowBalanceThreshold: threshold,
		MemberCount:         memberCount,
		PerHeadCost:         PerHeadCost(totalExpense, memberCount),
		LowBalance:          balance < threshold,
	}
}
