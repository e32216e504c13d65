package ports

import (
	"context"

	"github.com/i-kemen/tomato-market/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	UpdateNickname(ctx context.Context, id, nickname string) error
	// ListByRole returns a page of users holding the given role and the
	// total count of matching users.
	ListByRole(ctx context.Context, role domain.Role, page PageRequest) ([]*domain.User, int64, error)
}
