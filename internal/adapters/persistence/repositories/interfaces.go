package repositories

import (
	"context"

	"bookstore-api/internal/adapters/persistence/models"
)

// UserRepository is the credential store's persistence
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AddRole(ctx context.Context, user *models.User, role *models.Role) error
}

// RoleRepository manages the fixed role set
type RoleRepository interface {
	EnsureExists(ctx context.Context, name string) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
}

// AuthorRepository is the author store
type AuthorRepository interface {
	FindAll(ctx context.Context) ([]*models.Author, error)
	List(ctx context.Context, offset, limit int) ([]*models.Author, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Author, error)
	Create(ctx context.Context, author *models.Author) error
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

// BookRepository is the book store
type BookRepository interface {
	FindAll(ctx context.Context) ([]*models.Book, error)
	List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	GetImageFileName(ctx context.Context, id uint) (string, error)
	ListImageReferences(ctx context.Context) ([]models.Book, error)
}
