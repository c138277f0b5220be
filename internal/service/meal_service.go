package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/finance"
	"github.com/arefin-dev/messwallet/internal/models"
	"github.com/arefin-dev/messwallet/internal/repository"
)

// MealService owns attendance rows. The read side layers the
// attending-by-default rule over whatever rows exist.
type MealService struct {
	meals    repository.MealRepository
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

func NewMealService(
	meals repository.MealRepository,
	profiles repository.ProfileRepository,
	logger *zap.Logger,
) *MealService {
	return &MealService{meals: meals, profiles: profiles, logger: logger}
}

// ListByDate returns the stored rows for a date with user names joined.
// Members without a row simply don't appear here; the summary endpoint is
// the one that defaults them in.
func (s *MealService) ListByDate(ctx context.Context, date time.Time) ([]models.Meal, error) {
	meals, err := s.meals.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	lookup := profileLookup(profiles)
	for i := range meals {
		if p, ok := lookup[meals[i].UserID]; ok {
			meals[i].UserName = p.FullName
			meals[i].UserAvatar = p.AvatarURL
		}
	}
	return meals, nil
}

// TodaySummary folds today's rows over the full roster with the
// default-to-attending rule.
func (s *MealService) TodaySummary(ctx context.Context) (*finance.MealSummary, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	meals, err := s.meals.ListByDate(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	summary := finance.SummarizeMeals(profiles, meals)
	return &summary, nil
}

type UpdateMealInput struct {
	UserID uuid.UUID
	Date   time.Time
	Lunch  *bool
	Dinner *bool
}

// Upsert updates the (user, date) row, creating it if absent. Flags not
// supplied keep their existing value, or the attending default on insert.
// Any manual mark clears auto_marked.
func (s *MealService) Upsert(ctx context.Context, p Principal, in UpdateMealInput) error {
	existing, err := s.meals.GetByUserDate(ctx, in.UserID, in.Date)
	if err != nil {
		return err
	}

	if existing != nil {
		lunch := existing.Lunch
		dinner := existing.Dinner
		if in.Lunch != nil {
			lunch = *in.Lunch
		}
		if in.Dinner != nil {
			dinner = *in.Dinner
		}
		return s.meals.Update(ctx, existing.ID, lunch, dinner, p.UserID)
	}

	lunch, dinner := true, true
	if in.Lunch != nil {
		lunch = *in.Lunch
	}
	if in.Dinner != nil {
		dinner = *in.Dinner
	}
	markedBy := p.UserID
	_, err = s.meals.Create(ctx, &models.Meal{
		UserID:     in.UserID,
		MealDate:   in.Date,
		Lunch:      lunch,
		Dinner:     dinner,
		MarkedBy:   &markedBy,
		AutoMarked: false,
	})
	return err
}

// MemberMealCount is the per-member tally for a month.
type MemberMealCount struct {
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	MealCount int       `json:"meal_count"`
}

func (s *MealService) History(ctx context.Context, month, year int) ([]MemberMealCount, error) {
	meals, err := s.meals.ListByMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := finance.CountMeals(meals)
	history := make([]MemberMealCount, 0, len(profiles))
	for _, p := range profiles {
		history = append(history, MemberMealCount{
			UserID:    p.UserID,
			UserName:  p.FullName,
			MealCount: counts[p.UserID],
		})
	}
	return history, nil
}
