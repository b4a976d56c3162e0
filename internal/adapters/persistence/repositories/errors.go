package repositories

import (
	"errors"
	"fmt"

	"bookstore-api/internal/core/domain"

	"gorm.io/gorm"
)

// notFound converts gorm.ErrRecordNotFound into domain.ErrNotFound
func notFound(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s with id %v", domain.ErrNotFound, what, id)
	}
	return err
}

// mustAffect turns a write that touched no rows into domain.ErrPersistence
func mustAffect(result *gorm.DB, op string) error {
	if result.Error != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s affected no rows", domain.ErrPersistence, op)
	}
	return nil
}
