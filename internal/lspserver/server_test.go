package lspserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConstructsWithoutPanicking(t *testing.T) {
	s := NewServer(nil)
	require.NotNil(t, s)
	require.NotNil(t, s.api)
	assert.NotNil(t, s.capabilities.CompletionProvider)
	assert.NotNil(t, s.capabilities.SemanticTokensProvider)
	assert.NotNil(t, s.capabilities.DefinitionProvider)
}
