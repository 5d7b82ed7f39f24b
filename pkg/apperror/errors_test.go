package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError_ForeignErrorDoesNotLeak(t *testing.T) {
	err := errors.New(`ERROR: relation "managers.fact_review_sentiment" does not exist`)

	appErr := GetAppError(err)

	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, KindInternal, appErr.Kind)
	assert.NotContains(t, appErr.Message, "relation")
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("run query: %w", ErrPermissionDenied)

	assert.Equal(t, KindPermissionDenied, KindOf(wrapped))
	assert.Equal(t, KindInvalidArgument, KindOf(NewInvalidArgumentError("unknown type \"bogus\"")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestIs_MatchesByKind(t *testing.T) {
	err := NewInvalidArgumentError("unknown type")

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrUnauthenticated))
}
