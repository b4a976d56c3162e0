package validator

import (
	"testing"

	"bookstore-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string   `json:"name" validate:"required,max=5"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}

func TestStruct(t *testing.T) {
	neg := -1.0
	ok := 3.5

	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{name: "valid", in: sample{Name: "abc", Price: &ok}},
		{name: "nil price", in: sample{Name: "abc"}},
		{name: "missing name", in: sample{}, wantErr: "name is required"},
		{name: "too long", in: sample{Name: "abcdefg"}, wantErr: "name must be at most 5 characters"},
		{name: "negative price", in: sample{Name: "a", Price: &neg}, wantErr: "price must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
