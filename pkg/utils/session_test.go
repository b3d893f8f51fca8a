package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession(t *testing.T) {
	session := NewSession(context.Background())
	assert.False(t, session.IsDone())
	assert.False(t, session.Started().IsZero())
	assert.GreaterOrEqual(t, session.Uptime().Nanoseconds(), int64(0))

	session.Cancel()
	assert.True(t, session.IsDone())
	assert.Error(t, session.Ctx().Err())
}
