package repositories

import (
	"context"
	"fmt"

	"bookstore-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// roleRepository implements RoleRepository interface
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// EnsureExists returns the named role, creating it if absent
func (r *roleRepository) EnsureExists(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).Where(models.Role{Name: name}).FirstOrCreate(&role).Error
	if err != nil {
		return nil, fmt.Errorf("ensure role %s: %w", name, err)
	}
	return &role, nil
}

// GetByName gets a role by name
func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, notFound(err, "role", name)
	}
	return &role, nil
}
