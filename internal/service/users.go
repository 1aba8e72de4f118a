package service

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/panchito04/BackHogEle/internal/auth"
	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterInput carries the fields accepted for registration
type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// UserService manages back-office accounts and token issuance
type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB, tokens *auth.TokenManager) *UserService {
	return &UserService{
		userRepo: repository.NewUserRepository(db),
		tokens:   tokens,
	}
}

// Register validates the input, stores the user with a hashed password
// and issues a token.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, "", Invalidf("name, email and password are required")
	}
	if !models.ValidRole(input.Role) {
		return nil, "", Invalidf("invalid role, must be one of: admin, seller, delivery")
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, "", Invalidf("invalid email address")
	}
	if len(input.Password) < 6 {
		return nil, "", Invalidf("password must be at least 6 characters")
	}

	_, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, "", Invalidf("this email is already registered")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", errors.Wrap(err, "failed to check for existing user")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", errors.Wrap(err, "failed to create user")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	log.Info().Uint("user_id", user.ID).Str("email", user.Email).Str("role", string(user.Role)).Msg("User registered")
	return user, token, nil
}

// Login checks the credentials and issues a token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", Invalidf("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", &AuthError{Message: "wrong email or password"}
		}
		return nil, "", errors.Wrap(err, "failed to look up user")
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		log.Warn().Str("email", email).Msg("Failed login attempt")
		return nil, "", &AuthError{Message: "wrong email or password"}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	log.Info().Uint("user_id", user.ID).Str("email", user.Email).Msg("User logged in")
	return user, token, nil
}

// GetUser returns the account for a verified token's user id
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns all accounts
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}
