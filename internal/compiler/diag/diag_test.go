package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/source"
)

func TestCollectorHasErrors(t *testing.T) {
	var c diag.Collector
	assert.False(t, c.HasErrors())

	c.Report(diag.New(diag.KindUnusedVariable, diag.SeverityWarning, source.Range{}, "unused local variable 'x'"))
	assert.False(t, c.HasErrors())

	c.Report(diag.New(diag.KindUndefinedName, diag.SeverityError, source.Range{}, "no definition for '%s' in scope", "y"))
	require.True(t, c.HasErrors())
	assert.Equal(t, "no definition for 'y' in scope", c.Diagnostics[1].Message)
}

func TestWithRelatedAppends(t *testing.T) {
	d := diag.New(diag.KindUnificationFailure, diag.SeverityError, source.Range{}, "type mismatch")
	d = d.WithRelated(source.Range{}, "expected because of this")
	d = d.WithRelated(source.Range{}, "shadowed binding here")
	require.Len(t, d.Related, 2)
	assert.Equal(t, "expected because of this", d.Related[0].Message)
}

func TestWithTagSetsTagWithoutMutatingOriginal(t *testing.T) {
	d := diag.New(diag.KindUnusedVariable, diag.SeverityWarning, source.Range{}, "unused local variable 'x'")
	tagged := d.WithTag(diag.TagUnnecessary)
	assert.Equal(t, diag.TagNone, d.Tag)
	assert.Equal(t, diag.TagUnnecessary, tagged.Tag)
}
