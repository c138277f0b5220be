package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arefin-dev/messwallet/internal/auth"
	"github.com/arefin-dev/messwallet/internal/models"
	"github.com/arefin-dev/messwallet/internal/repository"
)

const tokenTTL = 24 * time.Hour

// AuthService handles signup and login. Signup writes three rows in
// sequence (account, profile, role) without a transaction; a failure
// between steps leaves an account without a profile, matching the
// documented lifecycle.
type AuthService struct {
	accounts repository.AccountRepository
	profiles repository.ProfileRepository
	roles    repository.RoleRepository

	jwtSecret    string
	founderEmail string
	logger       *zap.Logger
}

func NewAuthService(
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	roles repository.RoleRepository,
	jwtSecret, founderEmail string,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accounts:     accounts,
		profiles:     profiles,
		roles:        roles,
		jwtSecret:    jwtSecret,
		founderEmail: founderEmail,
		logger:       logger,
	}
}

type SignupInput struct {
	Email    string
	Password string
	FullName string
	Phone    *string
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (string, error) {
	existing, err := s.accounts.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", fmt.Errorf("check existing account: %w", err)
	}
	if existing != nil {
		return "", ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.Create(ctx, in.Email, string(hash))
	if err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}

	if _, err := s.profiles.Create(ctx, account.ID, in.FullName, in.Email, in.Phone); err != nil {
		return "", fmt.Errorf("create profile: %w", err)
	}

	role := models.RoleMember
	if strings.EqualFold(in.Email, s.founderEmail) {
		role = models.RoleFounder
	}
	if _, err := s.roles.Create(ctx, account.ID, role, nil); err != nil {
		return "", fmt.Errorf("create role: %w", err)
	}

	s.logger.Info("user signed up",
		zap.String("user_id", account.ID.String()),
		zap.String("role", string(role)),
	)

	return auth.GenerateToken(account.ID, account.Email, role, s.jwtSecret, tokenTTL)
}

// Login returns ErrInvalidCredentials for both unknown email and wrong
// password, so the response doesn't reveal which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	role := models.RoleMember
	if r, err := s.roles.GetByUserID(ctx, account.ID); err == nil && r != nil {
		role = r.Role
	}

	return auth.GenerateToken(account.ID, account.Email, role, s.jwtSecret, tokenTTL)
}
