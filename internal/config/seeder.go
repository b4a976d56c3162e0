package config

import (
	"context"
	"fmt"

	"bookstore-api/internal/adapters/persistence/models"
	"bookstore-api/internal/adapters/persistence/repositories"
	"bookstore-api/internal/core/domain"
	"bookstore-api/internal/pkg/logging"
	"bookstore-api/internal/pkg/password"

	"gorm.io/gorm"
)

// seedUser is a demo account created when SEED_USERS is on
type seedUser struct {
	Username string
	Email    string
	Role     string
}

var seedUsers = []seedUser{
	{Username: "Admin", Email: "admin@localhost.com", Role: domain.RoleAdministrator},
	{Username: "Customer1", Email: "customer1@localhost.com", Role: domain.RoleCustomer},
	{Username: "Customer2", Email: "customer2@localhost.com", Role: domain.RoleCustomer},
}

// Seeder handles database seeding
type Seeder struct {
	roles repositories.RoleRepository
	users repositories.UserRepository
	cfg   SeedConfig
	log   logging.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config, log logging.Logger) *Seeder {
	return &Seeder{
		roles: repositories.NewRoleRepository(db),
		users: repositories.NewUserRepository(db),
		cfg:   cfg.Seed,
		log:   log,
	}
}

// Run ensures the role set exists and, when enabled, the demo users
func (s *Seeder) Run(ctx context.Context) error {
	for _, name := range domain.KnownRoles {
		if _, err := s.roles.EnsureExists(ctx, name); err != nil {
			return err
		}
	}

	if !s.cfg.Users {
		return nil
	}
	if s.cfg.Password == "" {
		s.log.Warn(ctx, "SEED_USERS is set without SEED_PASSWORD, skipping demo users")
		return nil
	}

	for _, u := range seedUsers {
		if err := s.seedUser(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedUser(ctx context.Context, u seedUser) error {
	exists, err := s.users.ExistsByUsername(ctx, u.Username)
	if err != nil {
		return fmt.Errorf("check seed user %s: %w", u.Username, err)
	}
	if exists {
		return nil
	}

	hashed, err := password.Hash(s.cfg.Password)
	if err != nil {
		return err
	}
	role, err := s.roles.GetByName(ctx, u.Role)
	if err != nil {
		return err
	}

	user := &models.User{
		Username: u.Username,
		Email:    u.Email,
		Password: hashed,
		Roles:    []models.Role{*role},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.log.Info(ctx, "seed user created", "username", u.Username, "role", u.Role)
	return nil
}
