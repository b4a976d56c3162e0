package repositories

import (
	"context"
	"errors"
	"fmt"

	"bookstore-api/internal/adapters/persistence/models"
	"bookstore-api/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user together with its role memberships
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return mustAffect(r.db.WithContext(ctx).Create(user), "create user")
}

// GetByID gets a user by ID with roles
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Roles").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// GetByUsername gets a user by username with roles
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Roles").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", domain.ErrNotFound, username)
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername checks if username exists
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// AddRole adds a role membership; adding an existing membership is a no-op
func (r *userRepository) AddRole(ctx context.Context, user *models.User, role *models.Role) error {
	return r.db.WithContext(ctx).Model(user).Association("Roles").Append(role)
}
