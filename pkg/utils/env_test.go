package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetenvHelpers(t *testing.T) {
	t.Setenv("TS_INT", "42")
	t.Setenv("TS_BAD_INT", "forty")
	t.Setenv("TS_BOOL", "true")
	t.Setenv("TS_DURATION", "90s")

	assert.Equal(t, "fallback", Getenv("TS_MISSING", "fallback"))
	assert.Equal(t, 42, GetenvInt("TS_INT", 1))
	assert.Equal(t, 1, GetenvInt("TS_BAD_INT", 1))
	assert.True(t, GetenvBool("TS_BOOL", false))
	assert.Equal(t, 90*time.Second, GetenvDuration("TS_DURATION", time.Minute))
	assert.Equal(t, time.Minute, GetenvDuration("TS_MISSING", time.Minute))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, SplitList(" http://a, ,http://b "))
	assert.Nil(t, SplitList(""))
}
