package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("loader", "missing required keys: SANITY_API_TOKEN", nil)
	assert.Contains(t, err.Error(), "loader")
	assert.Contains(t, err.Error(), "SANITY_API_TOKEN")
}

func TestAPIError(t *testing.T) {
	err := &APIError{
		Service:    "cms",
		StatusCode: 401,
		Message:    "unauthorized",
		Body:       `{"error":"invalid token"}`,
	}
	assert.Contains(t, err.Error(), "cms")
	assert.Contains(t, err.Error(), "401")
}

func TestAPIErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := WrapAPI("directory", "/graphql", 0, inner)
	assert.ErrorIs(t, err, inner)
}

func TestValidationErrorIs(t *testing.T) {
	err := &ValidationError{Field: "perspective", Value: "bogus", Message: "unknown perspective"}
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIsDiscrepancies(t *testing.T) {
	assert.True(t, IsDiscrepancies(ErrDiscrepancies))
	assert.True(t, IsDiscrepancies(fmt.Errorf("run failed: %w", ErrDiscrepancies)))
	assert.False(t, IsDiscrepancies(ErrNotFound))
}

func TestWrapHelpersNilPassthrough(t *testing.T) {
	assert.NoError(t, WrapIO("write", "out.csv", nil))
	assert.NoError(t, WrapParse("yaml", "sponsors.yaml", nil))
	assert.NoError(t, WrapAPI("cms", "/query", 0, nil))
}

func TestWrapIO(t *testing.T) {
	inner := errors.New("permission denied")
	err := WrapIO("write", "sponsor-validation-2026-08-24.csv", inner)
	assert.Contains(t, err.Error(), "write")
	assert.Contains(t, err.Error(), "sponsor-validation-2026-08-24.csv")
	assert.ErrorIs(t, err, inner)
}
