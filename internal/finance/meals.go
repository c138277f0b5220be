package finance

import (
	"github.com/google/uuid"

	"github.com/arefin-dev/messwallet/internal/models"
)

// MealSummary is the per-day attendance roll-up.
type MealSummary struct {
	Members     []models.TodayMealSummary `json:"members"`
	LunchCount  int                       `json:"lunch_count"`
	DinnerCount int                       `json:"dinner_count"`
}

// SummarizeMeals folds a day's meal rows over the full profile list.
// A member with no row attends both meals ("attending by default").
func SummarizeMeals(profiles []models.Profile, meals []models.Meal) MealSummary {
	byUser := make(map[uuid.UUID]models.Meal, len(meals))
	for _, m := range meals {
		byUser[m.UserID] = m
	}

	summary := MealSummary{Members: make([]models.TodayMealSummary, 0, len(profiles))}
	for _, p := range profiles {
		lunch, dinner := true, true
		if m, ok := byUser[p.UserID]; ok {
			lunch, dinner = m.Lunch, m.Dinner
		}
		summary.Members = append(summary.Members, models.TodayMealSummary{
			UserID:     p.UserID,
			UserName:   p.FullName,
			UserAvatar: p.AvatarURL,
			Lunch:      lunch,
			Dinner:     dinner,
		})
		if lunch {
			summary.LunchCount++
		}
		if dinner {
			summary.DinnerCount++
		}
	}
	return summary
}

// CountMeals tallies attended meals per user over a set of rows: each true
// lunch or dinner flag counts one.
func CountMeals(meals []models.Meal) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	for _, m := range meals {
		if m.Lunch {
			counts[m.UserID]++
		}
		if m.Dinner {
			counts[m.UserID]++
		}
	}
	return counts
}
