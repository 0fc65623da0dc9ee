package codegen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jGleitz/dgs-codegen/codegen"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := codegen.NewSchemaError("Show", "related", "cannot resolve field type", nil)
		assert.Equal(t, "dgs: schema error on type Show field related: cannot resolve field type", err.Error())
	})

	t.Run("Error without type", func(t *testing.T) {
		err := codegen.NewSchemaError("", "shows", "cannot resolve argument first", nil)
		assert.Equal(t, "dgs: schema error field shows: cannot resolve argument first", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := codegen.NewSchemaError("Ghost", "", "type is not defined in the schema document", nil)
		assert.True(t, errors.Is(err, codegen.ErrInvalidSchema))
	})

	t.Run("Unwrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := codegen.NewSchemaError("Show", "", "load failed", cause)
		assert.Equal(t, cause, errors.Unwrap(err))
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("IsSchemaError", func(t *testing.T) {
		err := codegen.NewSchemaError("Show", "", "bad", nil)
		assert.True(t, codegen.IsSchemaError(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, codegen.IsSchemaError(wrapped))

		assert.False(t, codegen.IsSchemaError(errors.New("other error")))
		assert.False(t, codegen.IsSchemaError(nil))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := codegen.NewConfigError("Target", nil, "missing target directory in config")
		assert.Equal(t, `dgs: config error for "Target": missing target directory in config`, err.Error())
	})

	t.Run("Error with value", func(t *testing.T) {
		err := codegen.NewConfigError("Nullability", "lenient", "unknown nullability strategy; use none or strict")
		assert.Equal(t, `dgs: config error for "Nullability" (value: lenient): unknown nullability strategy; use none or strict`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := codegen.NewConfigError("Package", nil, "package cannot be empty")
		assert.True(t, errors.Is(err, codegen.ErrMissingConfig))
	})

	t.Run("IsConfigError", func(t *testing.T) {
		err := codegen.NewConfigError("Target", nil, "missing")
		assert.True(t, codegen.IsConfigError(err))
		assert.True(t, codegen.IsConfigError(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, codegen.IsConfigError(errors.New("other error")))
		assert.False(t, codegen.IsConfigError(nil))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := codegen.NewGenerationError("ShowProjection", "showprojection.go", "render", nil)
		assert.Equal(t, "dgs: generation error for ShowProjection (file: showprojection.go): render", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := codegen.NewGenerationError("", "a.go", "write", nil)
		assert.True(t, errors.Is(err, codegen.ErrGenerationFailed))
	})

	t.Run("Unwrap", func(t *testing.T) {
		cause := errors.New("disk full")
		err := codegen.NewGenerationError("", "a.go", "write", cause)
		assert.Equal(t, cause, errors.Unwrap(err))
	})

	t.Run("IsGenerationError", func(t *testing.T) {
		err := codegen.NewGenerationError("", "", "boom", nil)
		assert.True(t, codegen.IsGenerationError(err))
		assert.True(t, codegen.IsGenerationError(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, codegen.IsGenerationError(errors.New("other error")))
		assert.False(t, codegen.IsGenerationError(nil))
	})
}
