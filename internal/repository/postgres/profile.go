package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arefin-dev/messwallet/internal/models"
)

type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

// serial_position is nullable in the table; COALESCE maps absent to 0 and
// the display layer treats 0 as "unset, sort last".
const profileColumns = `id, user_id, full_name, email, phone, avatar_url, COALESCE(serial_position, 0), welcome_shown, created_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Email,
		&p.Phone,
		&p.AvatarURL,
		&p.SerialPosition,
		&p.WelcomeShown,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileStore) Create(ctx context.Context, userID uuid.UUID, fullName, email string, phone *string) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, full_name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING ` + profileColumns

	p, err := scanProfile(s.pool.QueryRow(ctx, query, userID, fullName, email, phone))
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	p, err := scanProfile(s.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) List(ctx context.Context) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

func (s *ProfileStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM profiles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return count, nil
}

func (s *ProfileStore) UpdateInfo(ctx context.Context, userID uuid.UUID, fullName string, phone *string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE profiles SET full_name = $2, phone = $3 WHERE user_id = $1`,
		userID, fullName, phone)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE profiles SET avatar_url = $2 WHERE user_id = $1`,
		userID, avatarURL)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	return nil
}

func (s *ProfileStore) UpdateSerialPosition(ctx context.Context, userID uuid.UUID, position int) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE profiles SET serial_position = $2 WHERE user_id = $1`,
		userID, position)
	if err != nil {
		return fmt.Errorf("update serial position: %w", err)
	}
	return nil
}

func (s *ProfileStore) MarkWelcomeShown(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE profiles SET welcome_shown = true WHERE user_id = $1`,
		userID)
	if err != nil {
		return fmt.Errorf("mark welcome shown: %w", err)
	}
	return nil
}

func (s *ProfileStore) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
