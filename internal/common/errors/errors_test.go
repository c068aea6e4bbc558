// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFeedFetchError(t *testing.T) {
	err := NewFeedFetchError("Global Nomad News", fmt.Errorf("feed returned 502"))

	assert.Equal(t, ErrCodeFeedFetchFailed, err.Code)
	assert.Equal(t, "News feed fetch failed", err.Message)
	assert.Contains(t, err.Details, "Global Nomad News")
	assert.Contains(t, err.Details, "feed returned 502")
	assert.True(t, err.Retryable)
	assert.False(t, err.Timestamp.IsZero())
}

func TestStandardErrorMessage(t *testing.T) {
	err := NewWorkflowStateError("answer before selecting a destination")
	assert.Equal(t, "StandardError[WORKFLOW_STATE_INVALID]: Operation not valid in current workflow state", err.Error())
}
