package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("customer", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: customer, ID is: 123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("stringer IDs are rendered through String", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("product", stringID("p-1"))
		assert.Equal(t, "object not found: p-1", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidErrorWithCause("status", errors.New("SHIPPED is not a valid status"))

	assert.Equal(t, "status", err.ParamName)
	assert.Equal(t, "value is invalid: status (cause: SHIPPED is not a valid status)", err.Error())
	assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	assert.Equal(t, "value is invalid: status", errs.NewValueIsInvalidError("status").Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, 1000)

		assert.Equal(t, "value is invalid: 0 is quantity, min value is 1, max value is 1000", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("removes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("items")

	assert.Equal(t, "value is required: items", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	withCause := errs.NewValueIsRequiredErrorWithCause("items", errors.New("empty list"))
	assert.Equal(t, "value is required: items (cause: empty list)", withCause.Error())
}

func TestConflictError(t *testing.T) {
	t.Run("matches sentinel", func(t *testing.T) {
		err := errs.NewConflictError("tracking code", "FUL-1")

		assert.Equal(t, "conflict: tracking code FUL-1", err.Error())
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("matches sentinel and cause", func(t *testing.T) {
		cause := errors.New("duplicated key")
		err := errs.NewConflictErrorWithCause("tracking code", "FUL-1", cause)

		require.ErrorIs(t, err, errs.ErrConflict)
		require.ErrorIs(t, err, cause)
		assert.Equal(t, "conflict: tracking code FUL-1 (cause: duplicated key)", err.Error())
	})
}

func TestTransientError(t *testing.T) {
	err := errs.NewTransientErrorWithCause("commit", context.DeadlineExceeded)

	require.ErrorIs(t, err, errs.ErrTransient)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "transient failure: commit (cause: context deadline exceeded)", err.Error())
	assert.Equal(t, "transient failure: begin", errs.NewTransientError("begin").Error())
}

func TestIsValidation(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"invalid", errs.NewValueIsInvalidError("status"), true},
		{"required", errs.NewValueIsRequiredError("items"), true},
		{"out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, 10), true},
		{"wrapped", fmt.Errorf("command: %w", errs.NewValueIsRequiredError("items")), true},
		{"not found", errs.NewObjectNotFoundError("order", "1"), false},
		{"conflict", errs.NewConflictError("stock", "1"), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errs.IsValidation(tc.err))
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "conflict", errs.ErrConflict.Error())
	assert.Equal(t, "transient failure", errs.ErrTransient.Error())
}

type stringID string

func (s stringID) String() string { return string(s) }
