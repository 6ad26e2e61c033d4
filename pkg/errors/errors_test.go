package errors

import (
	"database/sql"
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentityForIs(t *testing.T) {
	err := Clone(ErrNotFound, "trader not found")
	assert.True(t, stdErrors.Is(err, ErrNotFound))
	assert.False(t, stdErrors.Is(err, ErrValidation))
	assert.Equal(t, "trader not found", err.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}

func TestIsThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("context: %w", Clone(ErrInvalidRange, ""))
	assert.True(t, stdErrors.Is(err, ErrInvalidRange))
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.True(t, stdErrors.Is(appErr, sql.ErrConnDone))
}

func TestInternalWraps(t *testing.T) {
	appErr := Internal(sql.ErrTxDone, "failed to save pattern")
	assert.Equal(t, "failed to save pattern: sql: transaction has already been committed or rolled back", appErr.Error())
	assert.Nil(t, FromError(nil))
}
