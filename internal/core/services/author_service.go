package services

import (
	"context"
	"fmt"

	"bookstore-api/internal/adapters/persistence/models"
	"bookstore-api/internal/adapters/persistence/repositories"
	"bookstore-api/internal/core/domain"
	"bookstore-api/internal/pkg/logging"
	"bookstore-api/internal/pkg/pagination"
	"bookstore-api/internal/pkg/validator"
)

// AuthorService implements the author catalog operations
type AuthorService struct {
	repo repositories.AuthorRepository
	log  logging.Logger
}

// NewAuthorService creates a new author service
func NewAuthorService(repo repositories.AuthorRepository, log logging.Logger) *AuthorService {
	return &AuthorService{repo: repo, log: log}
}

// List returns every author
func (s *AuthorService) List(ctx context.Context) ([]models.AuthorDTO, error) {
	authors, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list authors: %w", domain.ErrPersistence, err)
	}
	out := make([]models.AuthorDTO, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.ToDTO())
	}
	return out, nil
}

// Page returns one page of authors and the total count
func (s *AuthorService) Page(ctx context.Context, params *pagination.Params) ([]models.AuthorDTO, int64, error) {
	authors, total, err := s.repo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list authors: %w", domain.ErrPersistence, err)
	}
	out := make([]models.AuthorDTO, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.ToDTO())
	}
	return out, total, nil
}

// Get returns one author with its books
func (s *AuthorService) Get(ctx context.Context, id uint) (*models.AuthorDTO, error) {
	author, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := author.ToDTO()
	return &dto, nil
}

// Create validates and stores a new author
func (s *AuthorService) Create(ctx context.Context, input *models.AuthorCreateDTO) (*models.AuthorDTO, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: request body is required", domain.ErrValidation)
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	author := input.ToModel()
	if err := s.repo.Create(ctx, author); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "author created", "author_id", author.ID)
	dto := author.ToDTO()
	return &dto, nil
}

// Update replaces an existing author
func (s *AuthorService) Update(ctx context.Context, id uint, input *models.AuthorUpdateDTO) error {
	if err := checkUpdateTarget(id, input != nil, input != nil && input.ID == id); err != nil {
		return err
	}
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}
	if err := validator.Struct(input); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, input.ToModel()); err != nil {
		return err
	}
	s.log.Info(ctx, "author updated", "author_id", id)
	return nil
}

// Delete removes an author
func (s *AuthorService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: id must be positive", domain.ErrValidation)
	}
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "author deleted", "author_id", id)
	return nil
}

func (s *AuthorService) mustExist(ctx context.Context, id uint) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: probe author %d: %w", domain.ErrPersistence, id, err)
	}
	if !exists {
		return fmt.Errorf("%w: author with id %d", domain.ErrNotFound, id)
	}
	return nil
}

// checkUpdateTarget rejects updates with a non-positive path id, no body,
// or a body id that differs from the path id.
func checkUpdateTarget(id uint, hasBody, idsMatch bool) error {
	switch {
	case id == 0:
		return fmt.Errorf("%w: id must be positive", domain.ErrValidation)
	case !hasBody:
		return fmt.Errorf("%w: request body is required", domain.ErrValidation)
	case !idsMatch:
		return fmt.Errorf("%w: body id does not match path id %d", domain.ErrValidation, id)
	}
	return nil
}
