package repositories

import (
	"context"

	"bookstore-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// FindAll lists every book with its author
func (r *bookRepository) FindAll(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book
	err := r.db.WithContext(ctx).Preload("Author").Order("id ASC").Find(&books).Error
	return books, err
}

// List lists books with pagination
func (r *bookRepository) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// FindByID gets a book by ID with its author
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Preload("Author").First(&book, id).Error
	if err != nil {
		return nil, notFound(err, "book", id)
	}
	return &book, nil
}

// Create creates a new book
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return mustAffect(r.db.WithContext(ctx).Omit("Author").Create(book), "create book")
}

// Update overwrites every column of an existing book
func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	result := r.db.WithContext(ctx).
		Model(&models.Book{ID: book.ID}).
		Select("*").
		Omit("ID", "Author", "CreatedAt", "DeletedAt").
		Updates(book)
	return mustAffect(result, "update book")
}

// Delete soft deletes a book
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return mustAffect(r.db.WithContext(ctx).Delete(&models.Book{}, id), "delete book")
}

// Exists checks if a book exists
func (r *bookRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetImageFileName returns the current asset reference of a book
func (r *bookRepository) GetImageFileName(ctx context.Context, id uint) (string, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Select("id", "image").First(&book, id).Error
	if err != nil {
		return "", notFound(err, "book", id)
	}
	return book.Image, nil
}

// ListImageReferences returns id and image of every book that references an asset
func (r *bookRepository) ListImageReferences(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := r.db.WithContext(ctx).
		Select("id", "image").
		Where("image <> ?", "").
		Order("id ASC").
		Find(&books).Error
	return books, err
}
