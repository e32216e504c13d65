package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/i-kemen/tomato-market/internal/core/domain"
	"github.com/i-kemen/tomato-market/internal/core/ports"
)

// AuthService implements signup and login. The admin signup key is explicit
// startup configuration, never read from ambient state.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	adminKey  string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, jwtSecret, adminKey string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		adminKey:  adminKey,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.UserView, error) {
	if input.Username == "" || input.Nickname == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	taken, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	taken, err = s.users.ExistsByNickname(ctx, input.Nickname)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if taken {
		return nil, domain.ErrNicknameTaken
	}

	role := domain.RoleCustomer
	if input.AdminKey != "" {
		if input.AdminKey != s.adminKey {
			return nil, domain.ErrInvalidAdminKey
		}
		role = domain.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Nickname:     input.Nickname,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user signed up")
	return ports.NewUserView(created), nil
}

// Login verifies credentials and issues a signed token. Unknown username
// and wrong password surface as the same error so callers cannot tell
// which check failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *ports.UserView, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, ports.NewUserView(user), nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
