package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthContext carries the authenticated caller into every lifecycle operation,
// so authorization rules are testable without a live session. Each capability
// is an independent check: reviewing is a staff privilege, deleting belongs to
// the owner alone.
type AuthContext struct {
	UserID   uuid.UUID
	Username string
	IsStaff  bool
}

func (a AuthContext) CanReview() bool {
	return a.IsStaff
}

func (a AuthContext) CanDelete(r *Request) bool {
	return a.UserID == r.UserID
}

func (a AuthContext) CanView(r *Request) bool {
	return a.IsStaff || a.UserID == r.UserID
}

func NewAuthContext(u *User) AuthContext {
	return AuthContext{
		UserID:   u.ID,
		Username: u.Username,
		IsStaff:  u.IsStaff,
	}
}
