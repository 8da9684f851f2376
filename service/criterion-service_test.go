package service

import (
	"errors"
	"testing"

	"pitchday/app_error"
	"pitchday/scoring"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapDuplicateKeyError(t *testing.T) {
	// "Team" and "team!" collide after normalization
	assert.Equal(t, scoring.NormalizeKey("Team"), scoring.NormalizeKey("team!"))

	err := mapDuplicateKeyError(gorm.ErrDuplicatedKey, "team")
	assert.True(t, app_error.IsValidation(err))
	assert.Contains(t, err.Error(), "team")
}

func TestMapDuplicateKeyErrorPassesThroughOtherErrors(t *testing.T) {
	cause := errors.New("connection reset")
	assert.Equal(t, cause, mapDuplicateKeyError(cause, "team"))
}
