// Package finance holds the pure money and attendance arithmetic: balance,
// per-head cost, equal-share splitting, member display ordering, and meal
// attendance defaults. Nothing here touches the network, so everything is
// directly testable.
package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EqualShare divides a total equally among count members, rounded to two
// decimal places. Decimal arithmetic keeps the common cases exact
// (900/3 = 300, 3000/5 = 600) instead of accumulating float error.
func EqualShare(total float64, count int) (float64, error) {
	if count <= 0 {
		return 0, fmt.Errorf("must have at least one member")
	}
	share := decimal.NewFromFloat(total).
		Div(decimal.NewFromInt(int64(count))).
		Round(2)
	return share.InexactFloat64(), nil
}

// PerHeadCost is the total expense divided by member count, rounded to the
// nearest whole unit. Zero members yields zero, not a division error.
func PerHeadCost(totalExpense float64, memberCount int) float64 {
	if memberCount <= 0 {
		return 0
	}
	return decimal.NewFromFloat(totalExpense).
		Div(decimal.NewFromInt(int64(memberCount))).
		Round(0).
		InexactFloat64()
}
