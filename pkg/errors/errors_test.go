package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/jayjaychukwu/reconcilation/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestSchemaError(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		err := pkgerrors.NewSchemaError("source", "amount")
		assert.Equal(t, `schema error in source dataset: required column "amount" is missing`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrSchema))
		assert.True(t, pkgerrors.IsSchemaError(err))
	})

	t.Run("structural violation", func(t *testing.T) {
		err := pkgerrors.NewSchemaViolation("target", "duplicate key 1 for column id")
		assert.Equal(t, "schema error in target dataset: duplicate key 1 for column id", err.Error())
		assert.True(t, pkgerrors.IsSchemaError(err))
	})

	t.Run("is invalid input", func(t *testing.T) {
		err := pkgerrors.NewSchemaError("target", "date")
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("wrapped", func(t *testing.T) {
		base := pkgerrors.NewSchemaError("source", "id")
		wrapped := fmt.Errorf("normalize: %w", base)
		assert.True(t, pkgerrors.IsSchemaError(wrapped))
	})
}

func TestParseError(t *testing.T) {
	t.Run("with line", func(t *testing.T) {
		err := pkgerrors.NewParseError("source", 3, "wrong number of fields", nil)
		assert.Equal(t, "parse error in source dataset at line 3: wrong number of fields", err.Error())
		assert.True(t, pkgerrors.IsParseError(err))
	})

	t.Run("without line", func(t *testing.T) {
		err := pkgerrors.NewParseError("target", 0, "empty input", nil)
		assert.Equal(t, "parse error in target dataset: empty input", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		cause := errors.New("unexpected EOF")
		err := pkgerrors.NewParseError("source", 0, "read failed", cause)
		assert.Equal(t, cause, errors.Unwrap(err))
	})
}

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("job", "3f1c2a")
	assert.Equal(t, "job with ID 3f1c2a not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("source_file", "report.txt", "must be a CSV file")
		assert.Equal(t, "validation failed for field source_file: must be a CSV file", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "unknown report format"}
		assert.Equal(t, "validation failed: unknown report format", err.Error())
	})
}

func TestStoreError(t *testing.T) {
	cause := errors.New("database is locked")
	err := pkgerrors.NewStoreError("update", "abc-123", cause)
	assert.Equal(t, "store error during update of job abc-123: database is locked", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "/tmp/x", nil))
		assert.NoError(t, pkgerrors.WrapValidation("file", nil))
		assert.NoError(t, pkgerrors.WrapStore("get", "id", nil))
	})

	t.Run("wrap io", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := pkgerrors.WrapIO("write", "/data/csv/a.csv", cause)
		assert.Contains(t, err.Error(), "permission denied")
		assert.Contains(t, err.Error(), "/data/csv/a.csv")
	})
}

func TestIsAlreadyProcessed(t *testing.T) {
	err := fmt.Errorf("job abc: %w", pkgerrors.ErrAlreadyProcessed)
	assert.True(t, pkgerrors.IsAlreadyProcessed(err))
	assert.False(t, pkgerrors.IsAlreadyProcessed(errors.New("other")))
}
