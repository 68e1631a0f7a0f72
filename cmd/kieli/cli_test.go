package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProjectNameRejectsTraversalAndSeparators(t *testing.T) {
	assert.NoError(t, validateProjectName("my_project"))
	assert.Error(t, validateProjectName(""))
	assert.Error(t, validateProjectName(".."))
	assert.Error(t, validateProjectName("a/b"))
	assert.Error(t, validateProjectName("a\\b"))
	assert.Error(t, validateProjectName(".hidden"))
}

func TestNewRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["version"])
	assert.True(t, names["new"])
	assert.True(t, names["repl"])
}

func TestReplStagesAcceptsOnlySpecifiedValues(t *testing.T) {
	for _, s := range []string{"lex", "expr", "prog", "des", "res"} {
		assert.True(t, replStages[s], "stage %q should be accepted", s)
	}
	assert.False(t, replStages["bogus"])
}
