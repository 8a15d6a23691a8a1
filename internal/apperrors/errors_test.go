package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("job %s missing", "x")))
	assert.True(t, IsValidation(Validation("bad input")))
	assert.True(t, IsConflict(Conflict("duplicate")))
	assert.True(t, IsKind(External(errors.New("boom"), "upstream"), KindExternal))

	assert.False(t, IsNotFound(Validation("bad input")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound("gone"))
	assert.True(t, IsNotFound(err))
}

func TestExternalUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := External(cause, "adzuna request failed")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "adzuna request failed")
}
