package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/i-kemen/tomato-market/internal/core/domain"
	"github.com/i-kemen/tomato-market/internal/core/ports"
)

// UserService implements profile reads/updates and the customer listing.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*ports.UserView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ports.NewUserView(user), nil
}

// UpdateProfile changes the nickname. Ownership has already been checked
// at the transport layer against the token claims.
func (s *UserService) UpdateProfile(ctx context.Context, userID, nickname string) (*ports.UserView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if nickname != user.Nickname {
		taken, err := s.users.ExistsByNickname(ctx, nickname)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		if taken {
			return nil, domain.ErrNicknameTaken
		}
		if err := s.users.UpdateNickname(ctx, userID, nickname); err != nil {
			return nil, err
		}
		user.Nickname = nickname
		user.UpdatedAt = time.Now().UTC()
		s.log.Info().Str("user_id", userID).Msg("nickname updated")
	}

	return ports.NewUserView(user), nil
}

// ListUsers returns customer accounts only, paginated and sorted. Pages
// beyond the data range yield an empty slice.
func (s *UserService) ListUsers(ctx context.Context, page ports.PageRequest) (*ports.ListUsersResult, error) {
	page = normalizePage(page, "id", "username", "nickname", "created_at")

	users, total, err := s.users.ListByRole(ctx, domain.RoleCustomer, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	items := make([]ports.UserView, len(users))
	for i, u := range users {
		items[i] = *ports.NewUserView(u)
	}

	return &ports.ListUsersResult{
		Items:      items,
		Pagination: paginationFor(total, page),
	}, nil
}
