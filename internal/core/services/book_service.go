package services

import (
	"context"
	"fmt"

	"bookstore-api/internal/adapters/persistence/models"
	"bookstore-api/internal/adapters/persistence/repositories"
	"bookstore-api/internal/adapters/storage"
	"bookstore-api/internal/core/domain"
	"bookstore-api/internal/pkg/logging"
	"bookstore-api/internal/pkg/pagination"
	"bookstore-api/internal/pkg/validator"
)

// BookService implements the book catalog operations and keeps cover
// images in line with each book's asset reference.
type BookService struct {
	repo    repositories.BookRepository
	authors repositories.AuthorRepository
	assets  storage.Store
	log     logging.Logger
}

// NewBookService creates a new book service
func NewBookService(
	repo repositories.BookRepository,
	authors repositories.AuthorRepository,
	assets storage.Store,
	log logging.Logger,
) *BookService {
	return &BookService{repo: repo, authors: authors, assets: assets, log: log}
}

// List returns every book with its author and embedded image
func (s *BookService) List(ctx context.Context) ([]models.BookDTO, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list books: %w", domain.ErrPersistence, err)
	}
	return s.toDTOs(ctx, books), nil
}

// Page returns one page of books and the total count
func (s *BookService) Page(ctx context.Context, params *pagination.Params) ([]models.BookDTO, int64, error) {
	books, total, err := s.repo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list books: %w", domain.ErrPersistence, err)
	}
	return s.toDTOs(ctx, books), total, nil
}

// Get returns one book with its author and embedded image
func (s *BookService) Get(ctx context.Context, id uint) (*models.BookDTO, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(ctx, book)
	return &dto, nil
}

// Create stores a new book. Supplied image content is written after the
// row is committed.
func (s *BookService) Create(ctx context.Context, input *models.BookCreateDTO) (*models.BookDTO, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: request body is required", domain.ErrValidation)
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}
	if err := storage.CheckUpload(input.Image, input.File); err != nil {
		return nil, err
	}
	if err := s.authorMustExist(ctx, input.AuthorID); err != nil {
		return nil, err
	}

	book := input.ToModel()
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	if err := storage.Reconcile(ctx, s.assets, "", book.Image, input.File); err != nil {
		return nil, fmt.Errorf("book %d saved but image write failed: %w", book.ID, err)
	}

	s.log.Info(ctx, "book created", "book_id", book.ID, "image", book.Image)
	dto := book.ToDTO()
	return &dto, nil
}

// Update replaces an existing book, then reconciles its image: a replaced
// reference is deleted and supplied content is written.
func (s *BookService) Update(ctx context.Context, id uint, input *models.BookUpdateDTO) error {
	if err := checkUpdateTarget(id, input != nil, input != nil && input.ID == id); err != nil {
		return err
	}
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: probe book %d: %w", domain.ErrPersistence, id, err)
	}
	if !exists {
		return fmt.Errorf("%w: book with id %d", domain.ErrNotFound, id)
	}
	if err := validator.Struct(input); err != nil {
		return err
	}
	if err := storage.CheckUpload(input.Image, input.File); err != nil {
		return err
	}
	if err := s.authorMustExist(ctx, input.AuthorID); err != nil {
		return err
	}

	oldRef, err := s.repo.GetImageFileName(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, input.ToModel()); err != nil {
		return err
	}

	if err := storage.Reconcile(ctx, s.assets, oldRef, input.Image, input.File); err != nil {
		return fmt.Errorf("book %d updated but image reconcile failed: %w", id, err)
	}

	s.log.Info(ctx, "book updated", "book_id", id, "old_image", oldRef, "image", input.Image)
	return nil
}

// Delete removes a book and then its image. A failed image delete is
// logged and left for the asset audit.
func (s *BookService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: id must be positive", domain.ErrValidation)
	}
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: probe book %d: %w", domain.ErrPersistence, id, err)
	}
	if !exists {
		return fmt.Errorf("%w: book with id %d", domain.ErrNotFound, id)
	}

	ref, err := s.repo.GetImageFileName(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if ref != "" {
		if err := storage.ValidateReference(ref); err != nil {
			s.log.Warn(ctx, "book image not deleted", "book_id", id, "image", ref, "error", err.Error())
		} else if err := s.assets.Delete(ctx, ref); err != nil {
			s.log.Warn(ctx, "book image not deleted", "book_id", id, "image", ref, "error", err.Error())
		}
	}

	s.log.Info(ctx, "book deleted", "book_id", id)
	return nil
}

func (s *BookService) authorMustExist(ctx context.Context, authorID uint) error {
	exists, err := s.authors.Exists(ctx, authorID)
	if err != nil {
		return fmt.Errorf("%w: probe author %d: %w", domain.ErrPersistence, authorID, err)
	}
	if !exists {
		return fmt.Errorf("%w: author %d does not exist", domain.ErrValidation, authorID)
	}
	return nil
}

func (s *BookService) toDTOs(ctx context.Context, books []*models.Book) []models.BookDTO {
	out := make([]models.BookDTO, 0, len(books))
	for _, b := range books {
		out = append(out, s.toDTO(ctx, b))
	}
	return out
}

// toDTO embeds the image. A read failure leaves File empty.
func (s *BookService) toDTO(ctx context.Context, book *models.Book) models.BookDTO {
	dto := book.ToDTO()
	file, err := storage.Embed(ctx, s.assets, book.Image)
	if err != nil {
		s.log.Warn(ctx, "book image unreadable", "book_id", book.ID, "image", book.Image, "error", err.Error())
	}
	dto.File = file
	return dto
}
