package ports

import (
	"context"
	"time"

	"github.com/i-kemen/tomato-market/internal/core/domain"
)

// SignupInput carries everything needed to create an account. AdminKey is
// optional; when present it must match the configured secret and grants
// the admin role instead of customer.
type SignupInput struct {
	Username string
	Nickname string
	Password string
	AdminKey string
}

// UserView is the outward-facing snapshot of a user. It never carries the
// password hash.
type UserView struct {
	ID        string
	Username  string
	Nickname  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUserView maps a user entity to its view.
func NewUserView(u *domain.User) *UserView {
	return &UserView{
		ID:        u.ID,
		Username:  u.Username,
		Nickname:  u.Nickname,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthService implements signup and login.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*UserView, error)
	// Login returns a signed token encoding the user id and role.
	Login(ctx context.Context, username, password string) (string, *UserView, error)
}
