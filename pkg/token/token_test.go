package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tok, err := Generate(8)
	assert.NoError(t, err)
	assert.Equal(t, 8, len(tok))

	tok2, err := Generate(8)
	assert.NoError(t, err)
	assert.NotEqual(t, tok, tok2)

	tok3, err := Generate(32)
	assert.NoError(t, err)
	assert.Equal(t, 32, len(tok3))
	assert.Regexp(t, `^[A-Za-z0-9_-]+$`, tok3)
}
