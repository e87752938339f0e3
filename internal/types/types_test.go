package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestModeString(t *testing.T) {
	assert.Equal(t, "NORMAL", ModeNormal.String())
	assert.Equal(t, "OVERLAY", ModeOverlay.String())
	assert.Equal(t, "INPUT", ModeInput.String())
	assert.Equal(t, "UNKNOWN", Mode(99).String())
}

func TestToastExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	toast := Toast{Message: "hi", Expires: now.Add(time.Second)}

	assert.False(t, toast.Expired(now))
	assert.True(t, toast.Expired(now.Add(time.Second)))
	assert.True(t, toast.Expired(now.Add(time.Minute)))
}
