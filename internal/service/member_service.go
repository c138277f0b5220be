package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/cache"
	"github.com/arefin-dev/messwallet/internal/finance"
	"github.com/arefin-dev/messwallet/internal/models"
	"github.com/arefin-dev/messwallet/internal/repository"
	"github.com/arefin-dev/messwallet/internal/storage"
)

// MemberService owns the housemate roster: the aggregated member list, the
// session's own profile, role assignment, manual ordering, and the
// cascading member deletion.
type MemberService struct {
	profiles repository.ProfileRepository
	roles    repository.RoleRepository
	deposits repository.DepositRepository
	expenses repository.ExpenseRepository
	meals    repository.MealRepository
	notifs   repository.NotificationRepository

	blobs        storage.BlobStore
	avatarBucket string
	cache        *cache.Client
	logger       *zap.Logger
}

func NewMemberService(
	profiles repository.ProfileRepository,
	roles repository.RoleRepository,
	deposits repository.DepositRepository,
	expenses repository.ExpenseRepository,
	meals repository.MealRepository,
	notifs repository.NotificationRepository,
	blobs storage.BlobStore,
	avatarBucket string,
	cacheClient *cache.Client,
	logger *zap.Logger,
) *MemberService {
	return &MemberService{
		profiles:     profiles,
		roles:        roles,
		deposits:     deposits,
		expenses:     expenses,
		meals:        meals,
		notifs:       notifs,
		blobs:        blobs,
		avatarBucket: avatarBucket,
		cache:        cacheClient,
		logger:       logger,
	}
}

// List builds the aggregated member view: five independent fetches reduced
// in memory, then sorted founder-first / serial-position / role-priority.
func (s *MemberService) List(ctx context.Context) ([]models.Member, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	deposits, err := s.deposits.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	meals, err := s.meals.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	roleByUser := make(map[uuid.UUID]models.Role, len(roles))
	for _, r := range roles {
		roleByUser[r.UserID] = r.Role
	}
	depositByUser := make(map[uuid.UUID]float64)
	for _, d := range deposits {
		depositByUser[d.UserID] += d.Amount
	}
	expenseByUser := make(map[uuid.UUID]float64)
	for _, e := range expenses {
		expenseByUser[e.PaidBy] += e.Amount
	}
	mealCounts := finance.CountMeals(meals)

	members := make([]models.Member, 0, len(profiles))
	for _, p := range profiles {
		role, ok := roleByUser[p.UserID]
		if !ok {
			role = models.RoleMember
		}
		members = append(members, models.Member{
			ID:             p.ID,
			UserID:         p.UserID,
			FullName:       p.FullName,
			Email:          p.Email,
			Phone:          p.Phone,
			AvatarURL:      p.AvatarURL,
			Role:           role,
			TotalDeposit:   depositByUser[p.UserID],
			TotalExpense:   expenseByUser[p.UserID],
			MealCount:      mealCounts[p.UserID],
			SerialPosition: p.SerialPosition,
		})
	}

	finance.SortMembers(members)
	return members, nil
}

// Me returns the caller's profile and role rows.
func (s *MemberService) Me(ctx context.Context, p Principal) (*models.Profile, *models.UserRole, error) {
	profile, err := s.profiles.GetByUserID(ctx, p.UserID)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, ErrNotFound
	}
	role, err := s.roles.GetByUserID(ctx, p.UserID)
	if err != nil {
		return nil, nil, err
	}
	return profile, role, nil
}

func (s *MemberService) UpdateProfile(ctx context.Context, p Principal, fullName string, phone *string) error {
	return s.profiles.UpdateInfo(ctx, p.UserID, fullName, phone)
}

func (s *MemberService) MarkWelcomeShown(ctx context.Context, p Principal) error {
	return s.profiles.MarkWelcomeShown(ctx, p.UserID)
}

// UploadAvatar stores the image and points the profile at its public URL.
func (s *MemberService) UploadAvatar(ctx context.Context, p Principal, fileName, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%d-%s", p.UserID, time.Now().UnixMilli(), fileName)
	url, err := s.blobs.Upload(ctx, s.avatarBucket, key, body, contentType)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	if err := s.profiles.UpdateAvatar(ctx, p.UserID, url); err != nil {
		return "", err
	}
	return url, nil
}

// UpdateRole reassigns a member's role. The founder role is fixed: it can
// neither be granted nor taken away here.
func (s *MemberService) UpdateRole(ctx context.Context, p Principal, targetUserID uuid.UUID, role models.Role) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	if role == models.RoleFounder {
		return ErrFounderRoleFixed
	}

	current, err := s.roles.GetByUserID(ctx, targetUserID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}
	if current.Role.IsFounder() {
		return ErrFounderRoleFixed
	}

	return s.roles.UpdateRole(ctx, targetUserID, role, p.UserID)
}

// Reorder persists the drag-handle ordering: one independent update per
// member, position = list index + 1, founder pinned to the front. Failures
// are collected and reported in aggregate only.
func (s *MemberService) Reorder(ctx context.Context, p Principal, orderedUserIDs []uuid.UUID) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}

	// Founder stays first no matter where the drag dropped them.
	roles, err := s.roles.List(ctx)
	if err != nil {
		return err
	}
	var founderID uuid.UUID
	for _, r := range roles {
		if r.Role.IsFounder() {
			founderID = r.UserID
			break
		}
	}
	if founderID != uuid.Nil {
		reordered := make([]uuid.UUID, 0, len(orderedUserIDs))
		reordered = append(reordered, founderID)
		for _, id := range orderedUserIDs {
			if id != founderID {
				reordered = append(reordered, id)
			}
		}
		orderedUserIDs = reordered
	}

	var failed int
	for i, userID := range orderedUserIDs {
		if err := s.profiles.UpdateSerialPosition(ctx, userID, i+1); err != nil {
			failed++
			s.logger.Warn("serial position update failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to update %d member position(s)", failed)
	}
	return nil
}

// Delete cascades a member removal across six tables in a fixed order:
// meals, deposits, expenses (as payer), notifications, role, profile. Each
// delete is awaited before the next and earlier deletes are not undone if
// a later one fails. Deleting the founder fails before any delete runs.
func (s *MemberService) Delete(ctx context.Context, p Principal, userID uuid.UUID) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}

	role, err := s.roles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if role != nil && role.Role.IsFounder() {
		return ErrCannotDeleteFounder
	}

	steps := []struct {
		name string
		fn   func(context.Context, uuid.UUID) error
	}{
		{"meals", s.meals.DeleteByUser},
		{"deposits", s.deposits.DeleteByUser},
		{"expenses", s.expenses.DeleteByPayer},
		{"notifications", s.notifs.DeleteByUser},
		{"role", s.roles.Delete},
		{"profile", s.profiles.Delete},
	}
	for _, step := range steps {
		if err := step.fn(ctx, userID); err != nil {
			return fmt.Errorf("delete member %s: %w", step.name, err)
		}
	}

	s.cache.Delete(ctx, cache.KeyFinanceStats)
	s.logger.Info("member deleted", zap.String("user_id", userID.String()))
	return nil
}
