package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstore-api/internal/adapters/persistence/models"
	"bookstore-api/internal/adapters/persistence/repositories"
	"bookstore-api/internal/config"
	"bookstore-api/internal/core/domain"
	"bookstore-api/internal/pkg/jwt"
	"bookstore-api/internal/pkg/logging"
	"bookstore-api/internal/pkg/password"
)

// Identity error codes
const (
	CodeDuplicateUserName = "DuplicateUserName"
	CodeDuplicateEmail    = "DuplicateEmail"
	CodeInvalidUserName   = "InvalidUserName"
	CodePasswordTooShort  = "PasswordTooShort"
)

// userNameChars are the characters allowed in a user name besides letters and digits
const userNameChars = "-._@+"

// AuthService handles registration, login and the current user lookup
type AuthService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
	tokens   *jwt.Manager
	cfg      *config.Config
	log      logging.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	tokens *jwt.Manager,
	cfg *config.Config,
	log logging.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		tokens:   tokens,
		cfg:      cfg,
		log:      log,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the body of a successful login
type LoginResult struct {
	Token string `json:"token"`
}

// Register creates a Customer account. When the account cannot be created
// every reason is returned as domain.IdentityErrors.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if email == "" {
		email = username
	}

	var errs domain.IdentityErrors
	if !validUserName(username) {
		errs = append(errs, domain.IdentityError{
			Code:        CodeInvalidUserName,
			Description: fmt.Sprintf("User name '%s' is invalid, can only contain letters or digits.", username),
		})
	}
	if !password.ValidatePassword(input.Password, s.cfg.PasswordMinLength) {
		errs = append(errs, domain.IdentityError{
			Code:        CodePasswordTooShort,
			Description: fmt.Sprintf("Passwords must be at least %d characters.", s.cfg.PasswordMinLength),
		})
	}

	if username != "" {
		exists, err := s.userRepo.ExistsByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("%w: check user name: %w", domain.ErrPersistence, err)
		}
		if exists {
			errs = append(errs, domain.IdentityError{
				Code:        CodeDuplicateUserName,
				Description: fmt.Sprintf("User name '%s' is already taken.", username),
			})
		}
	}
	if email != "" {
		exists, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("%w: check email: %w", domain.ErrPersistence, err)
		}
		if exists {
			errs = append(errs, domain.IdentityError{
				Code:        CodeDuplicateEmail,
				Description: fmt.Sprintf("Email '%s' is already taken.", email),
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role, err := s.roleRepo.EnsureExists(ctx, domain.RoleCustomer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Roles:    []models.Role{*role},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user.ToResponse(), nil
}

// Login verifies the credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, user.RoleNames())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Token: token}, nil
}

// Me returns the user the principal was issued for
func (s *AuthService) Me(ctx context.Context, principal *domain.Principal) (*models.UserResponse, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

func validUserName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(userNameChars, r):
		default:
			return false
		}
	}
	return true
}
