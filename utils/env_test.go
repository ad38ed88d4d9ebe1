package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("MW_INT", "42")
	t.Setenv("MW_BAD_INT", "forty")
	t.Setenv("MW_BOOL", "true")
	t.Setenv("MW_DUR", "15m")
	t.Setenv("MW_DUR_SECS", "90")
	t.Setenv("MW_LIST", "http://a.test, ,http://b.test")

	assert.Equal(t, 42, GetEnvAsInt("MW_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("MW_BAD_INT", 1))
	assert.Equal(t, 7, GetEnvAsInt("MW_MISSING", 7))
	assert.Equal(t, uint64(42), GetEnvAsUint64("MW_INT", 0))
	assert.True(t, GetEnvAsBool("MW_BOOL", false))
	assert.Equal(t, 15*time.Minute, GetEnvAsDuration("MW_DUR", 0))
	assert.Equal(t, 90*time.Second, GetEnvAsDuration("MW_DUR_SECS", 0))
	assert.Equal(t, "fallback", GetEnvAsString("MW_MISSING", "fallback"))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetEnvAsList("MW_LIST", nil))
	assert.Equal(t, []string{"x"}, GetEnvAsList("MW_MISSING", []string{"x"}))
}
