package models_test

import (
	"errors"
	"fmt"
	"testing"

	"baudok-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

// Handlers match with errors.Is, so a sentinel must stay recognizable even
// when a layer wraps it with context before it reaches writeError.
func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("get project abc: %w", models.ErrNotFound)
	assert.ErrorIs(t, wrapped, models.ErrNotFound)
	assert.NotErrorIs(t, wrapped, models.ErrInvalidCategory)

	wrapped = fmt.Errorf("upload image: %w", models.ErrInvalidCategory)
	assert.ErrorIs(t, wrapped, models.ErrInvalidCategory)
	assert.NotErrorIs(t, wrapped, models.ErrNotFound)
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(models.ErrNotFound, models.ErrInvalidCategory))
	assert.False(t, errors.Is(models.ErrInvalidCategory, models.ErrNotFound))
}
