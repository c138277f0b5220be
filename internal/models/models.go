package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for date-only fields (expense_date,
// deposit_date, meal_date).
const DateLayout = "2006-01-02"

// Role is the mess-wide permission level of a user. Exactly one role row
// exists per user; the founder role is seeded at signup by email match and
// is never reassigned afterwards.
type Role string

const (
	RoleFounder       Role = "founder"
	RoleSecondaryAdmin Role = "secondary_admin"
	RoleTertiaryAdmin  Role = "tertiary_admin"
	RoleMember         Role = "member"
)

// IsAdmin reports whether the role may perform admin-gated writes
// (deposits, role changes, broadcasts, deletions).
func (r Role) IsAdmin() bool {
	return r == RoleFounder || r == RoleSecondaryAdmin || r == RoleTertiaryAdmin
}

func (r Role) IsFounder() bool {
	return r == RoleFounder
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFounder, RoleSecondaryAdmin, RoleTertiaryAdmin, RoleMember:
		return true
	}
	return false
}

// Priority orders roles for display tie-breaks: founder < secondary_admin <
// tertiary_admin < member. Unknown roles sort last.
func (r Role) Priority() int {
	switch r {
	case RoleFounder:
		return 0
	case RoleSecondaryAdmin:
		return 1
	case RoleTertiaryAdmin:
		return 2
	case RoleMember:
		return 3
	}
	return 4
}

// Account is the authentication principal. Its ID is the user_id foreign
// key on every other table.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the housemate record shown across the app. SerialPosition is a
// manually-sortable integer (0 means unset; display treats unset as 999 and
// sorts it last among non-founders).
type Profile struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone"`
	AvatarURL      string    `json:"avatar_url"`
	SerialPosition int       `json:"serial_position"`
	WelcomeShown   bool      `json:"welcome_shown"`
	CreatedAt      time.Time `json:"created_at"`
}

type UserRole struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Role       Role       `json:"role"`
	AssignedBy *uuid.UUID `json:"assigned_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ExpenseCategory struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	NameBn    string    `json:"name_bn"`
	CreatedAt time.Time `json:"created_at"`
}

// Expense is one spend row. Split expenses are plain rows too: N of them,
// one per member, created independently.
type Expense struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	ItemName    string     `json:"item_name"`
	Amount      float64    `json:"amount"`
	Quantity    *float64   `json:"quantity"`
	Unit        *string    `json:"unit"`
	PaidBy      uuid.UUID  `json:"paid_by"`
	AddedBy     uuid.UUID  `json:"added_by"`
	ExpenseDate time.Time  `json:"expense_date"`
	ExpenseType string     `json:"expense_type"`
	IsEmergency bool       `json:"is_emergency"`
	Notes       *string    `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`

	// Joined display fields, populated by the service layer.
	PaidByName    string `json:"paid_by_name,omitempty"`
	PaidByAvatar  string `json:"paid_by_avatar,omitempty"`
	AddedByName   string `json:"added_by_name,omitempty"`
	AddedByAvatar string `json:"added_by_avatar,omitempty"`
	CategoryName  string `json:"category_name,omitempty"`
	CategoryNameBn string `json:"category_name_bn,omitempty"`
}

type Deposit struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Amount      float64   `json:"amount"`
	DepositDate time.Time `json:"deposit_date"`
	AddedBy     uuid.UUID `json:"added_by"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`

	UserName      string `json:"user_name,omitempty"`
	UserAvatar    string `json:"user_avatar,omitempty"`
	AddedByName   string `json:"added_by_name,omitempty"`
	AddedByAvatar string `json:"added_by_avatar,omitempty"`
}

// Meal is the attendance record for one member on one date, upserted on
// (user_id, meal_date). A missing row means attending both meals.
type Meal struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	MealDate   time.Time  `json:"meal_date"`
	Lunch      bool       `json:"lunch"`
	Dinner     bool       `json:"dinner"`
	MarkedBy   *uuid.UUID `json:"marked_by"`
	AutoMarked bool       `json:"auto_marked"`
	CreatedAt  time.Time  `json:"created_at"`

	UserName   string `json:"user_name,omitempty"`
	UserAvatar string `json:"user_avatar,omitempty"`
}

type MonthlyBudget struct {
	ID                  uuid.UUID  `json:"id"`
	Month               int        `json:"month"`
	Year                int        `json:"year"`
	BudgetAmount        float64    `json:"budget_amount"`
	LowBalanceThreshold float64    `json:"low_balance_threshold"`
	IsLocked            bool       `json:"is_locked"`
	LockedBy            *uuid.UUID `json:"locked_by"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SenderName   string             `json:"sender_name,omitempty"`
	SenderAvatar string             `json:"sender_avatar,omitempty"`
	Images       []ChatMessageImage `json:"images"`
	Reactions    []ChatReaction     `json:"reactions"`
	SeenBy       []ChatSeen         `json:"seen_by"`
}

type ChatMessageImage struct {
	ID        uuid.UUID `json:"id"`
	MessageID uuid.UUID `json:"message_id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`

	SenderName   string `json:"sender_name,omitempty"`
	SenderAvatar string `json:"sender_avatar,omitempty"`
}

type ChatReaction struct {
	ID        uuid.UUID `json:"id"`
	MessageID uuid.UUID `json:"message_id"`
	UserID    uuid.UUID `json:"user_id"`
	Reaction  string    `json:"reaction"`
	CreatedAt time.Time `json:"created_at"`

	UserName   string `json:"user_name,omitempty"`
	UserAvatar string `json:"user_avatar,omitempty"`
}

type ChatSeen struct {
	ID        uuid.UUID `json:"id"`
	MessageID uuid.UUID `json:"message_id"`
	UserID    uuid.UUID `json:"user_id"`
	SeenAt    time.Time `json:"seen_at"`

	UserName   string `json:"user_name,omitempty"`
	UserAvatar string `json:"user_avatar,omitempty"`
}

// Member is the aggregated housemate view: profile + role + lifetime
// deposit/expense totals and meal count.
type Member struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone"`
	AvatarURL      string    `json:"avatar_url"`
	Role           Role      `json:"role"`
	TotalDeposit   float64   `json:"total_deposit"`
	TotalExpense   float64   `json:"total_expense"`
	MealCount      int       `json:"meal_count"`
	SerialPosition int       `json:"serial_position"`
}

// FinanceStats is the dashboard aggregate.
type FinanceStats struct {
	TotalDeposit        float64 `json:"total_deposit"`
	TotalExpense        float64 `json:"total_expense"`
	Balance             float64 `json:"balance"`
	TodayExpense        float64 `json:"today_expense"`
	MonthlyBudget       float64 `json:"monthly_budget"`
	LowBalanceThreshold float64 `json:"low_balance_threshold"`
	MemberCount         int     `json:"member_count"`
	PerHeadCost         float64 `json:"per_head_cost"`
	LowBalance          bool    `json:"low_balance"`
}

// TodayMealSummary is one member's attendance for today, defaulted to
// attending when no meal row exists.
type TodayMealSummary struct {
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
	Lunch      bool      `json:"lunch"`
	Dinner     bool      `json:"dinner"`
}
