// Package storage keeps book cover images and reconciles them with the
// asset reference stored on each book.
//
// Asset writes are not coordinated: two concurrent updates of the same book
// may interleave their delete and write steps, and no transaction spans the
// database update and the asset write. Both windows are accepted.
package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bookstore-api/internal/core/domain"
)

var (
	// ErrAssetNotFound is returned by Store.Read when no asset has the name
	ErrAssetNotFound = errors.New("asset not found")
	// ErrInvalidReference rejects names that are not bare file names
	ErrInvalidReference = fmt.Errorf("%w: invalid asset reference", domain.ErrValidation)
	// ErrInvalidContent rejects content that is not standard base64
	ErrInvalidContent = fmt.Errorf("%w: asset content is not valid base64", domain.ErrValidation)
)

// Store is a flat namespace of binary assets keyed by file name.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	// Write creates or overwrites the asset.
	Write(ctx context.Context, name string, data []byte) error
	// Delete removes the asset. A missing asset is not an error.
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}

// ValidateReference accepts only bare file names.
func ValidateReference(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidReference, name)
	case strings.ContainsAny(name, `/\`), name != filepath.Base(name):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidReference, name)
	}
	return nil
}

// DecodeContent decodes base64 asset content. Empty input decodes to nil.
func DecodeContent(contentBase64 string) ([]byte, error) {
	if contentBase64 == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(contentBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return data, nil
}

// CheckUpload validates an incoming reference/content pair before any
// mutation happens, so bad input is rejected without side effects.
func CheckUpload(newRef, contentBase64 string) error {
	_, err := prepareUpload(newRef, contentBase64)
	return err
}

func prepareUpload(newRef, contentBase64 string) ([]byte, error) {
	if newRef != "" {
		if err := ValidateReference(newRef); err != nil {
			return nil, err
		}
	}
	if contentBase64 == "" {
		return nil, nil
	}
	if newRef == "" {
		return nil, fmt.Errorf("%w: image file name is required when file content is supplied", domain.ErrValidation)
	}
	return DecodeContent(contentBase64)
}

// Reconcile brings the store in line with a record whose asset reference
// moved from oldRef to newRef. It must run only after the record update
// has been committed.
//
//   - oldRef set and different from newRef: oldRef is deleted.
//   - contentBase64 set: it is decoded and written to newRef, overwriting.
//   - contentBase64 empty: nothing is written, even if newRef changed.
func Reconcile(ctx context.Context, store Store, oldRef, newRef, contentBase64 string) error {
	content, err := prepareUpload(newRef, contentBase64)
	if err != nil {
		return err
	}

	if oldRef != "" && oldRef != newRef {
		if err := ValidateReference(oldRef); err != nil {
			return err
		}
		if err := store.Delete(ctx, oldRef); err != nil {
			return fmt.Errorf("delete asset %s: %w", oldRef, err)
		}
	}

	if contentBase64 != "" {
		if err := store.Write(ctx, newRef, content); err != nil {
			return fmt.Errorf("write asset %s: %w", newRef, err)
		}
	}
	return nil
}

// Embed returns the base64 content of ref for display. An empty reference
// or a missing asset yields "" without error.
func Embed(ctx context.Context, store Store, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if err := ValidateReference(ref); err != nil {
		return "", nil
	}
	data, err := store.Read(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read asset %s: %w", ref, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
