package repositories

import (
	"context"

	"bookstore-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// authorRepository implements AuthorRepository interface
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

// FindAll lists every author with their books
func (r *authorRepository) FindAll(ctx context.Context) ([]*models.Author, error) {
	var authors []*models.Author
	err := r.db.WithContext(ctx).Preload("Books").Order("id ASC").Find(&authors).Error
	return authors, err
}

// List lists authors with pagination
func (r *authorRepository) List(ctx context.Context, offset, limit int) ([]*models.Author, int64, error) {
	var authors []*models.Author
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Author{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Books").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}

	return authors, total, nil
}

// FindByID gets an author by ID with books
func (r *authorRepository) FindByID(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	err := r.db.WithContext(ctx).Preload("Books").First(&author, id).Error
	if err != nil {
		return nil, notFound(err, "author", id)
	}
	return &author, nil
}

// Create creates a new author
func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	return mustAffect(r.db.WithContext(ctx).Omit("Books").Create(author), "create author")
}

// Update overwrites every column of an existing author
func (r *authorRepository) Update(ctx context.Context, author *models.Author) error {
	result := r.db.WithContext(ctx).
		Model(&models.Author{ID: author.ID}).
		Select("*").
		Omit("ID", "Books", "CreatedAt", "DeletedAt").
		Updates(author)
	return mustAffect(result, "update author")
}

// Delete soft deletes an author
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	return mustAffect(r.db.WithContext(ctx).Delete(&models.Author{}, id), "delete author")
}

// Exists checks if an author exists
func (r *authorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
