package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtraIgnoreMatcher(t *testing.T) {
	m := NewExtraIgnoreMatcher([]string{"**/*.tmp", "secrets/**"})

	assert.True(t, m.IsIgnored("a/b/c.tmp", false))
	assert.True(t, m.IsIgnored("secrets/keys.json", false))
	assert.False(t, m.IsIgnored("src/main.go", false))
	assert.False(t, m.IsIgnored("", false))
}
