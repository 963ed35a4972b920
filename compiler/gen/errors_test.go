package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmbiguousVersionError(t *testing.T) {
	err := NewAmbiguousVersionError([]string{"a.foo", "a.bar"})
	assert.ErrorIs(t, err, ErrAmbiguousVersion)
	assert.NotErrorIs(t, err, ErrConflictingMetadata)
	assert.Contains(t, err.Error(), "a.foo, a.bar")
	assert.True(t, IsAmbiguousVersionError(err))
	assert.False(t, IsConflictingMetadataError(err))

	// Detection works through wrapping.
	wrapped := fmt.Errorf("building graph: %w", err)
	assert.ErrorIs(t, wrapped, ErrAmbiguousVersion)
	assert.True(t, IsAmbiguousVersionError(wrapped))
}

func TestConflictingMetadataError(t *testing.T) {
	err := NewConflictingMetadataError("Acme Library", "Acme Bookstore")
	assert.ErrorIs(t, err, ErrConflictingMetadata)
	assert.Contains(t, err.Error(), `"Acme Library" != "Acme Bookstore"`)
	assert.True(t, IsConflictingMetadataError(err))

	var metaErr *ConflictingMetadataError
	require.True(t, errors.As(err, &metaErr))
	assert.Equal(t, "Acme Library", metaErr.First)
	assert.Equal(t, "Acme Bookstore", metaErr.Second)
}

func TestUnknownTypeError(t *testing.T) {
	err := NewUnknownTypeError("GetBook", "example.library.v1.Book")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, `apigen: graph error: method "GetBook" references unknown type "example.library.v1.Book"`, err.Error())
	assert.True(t, IsUnknownTypeError(err))
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("Workers", 0, "workers must be positive")
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, `apigen: config error for "Workers" (value: 0): workers must be positive`, err.Error())
	assert.True(t, IsConfigError(err))

	err = NewConfigError("ModuleSuffix", nil, "suffix cannot be empty")
	assert.Equal(t, `apigen: config error for "ModuleSuffix": suffix cannot be empty`, err.Error())
}
