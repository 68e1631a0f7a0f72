package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieli-lang/kieli/internal/compiler/database"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
)

func TestCompileValidDocumentProducesNoDiagnostics(t *testing.T) {
	db := database.New()
	id := db.OpenDocument("mem://a.kieli", `fn add(a: I32, b: I32) : I32 { a + b }`, "kieli", 1)

	var collected diag.Collector
	db.Compile(id, &collected)

	require.Empty(t, collected.Diagnostics)
	doc, ok := db.Document(id)
	require.True(t, ok)
	assert.NotNil(t, doc.Info)
	assert.NotNil(t, doc.Root)
	assert.NotNil(t, doc.CST)
	assert.NotNil(t, doc.AST)
	assert.Len(t, doc.AST.Definitions, 1)
	assert.Equal(t, doc.Diagnostics, collected.Diagnostics)
}

func TestCompileReportsDiagnosticsToBothSinkAndDocument(t *testing.T) {
	db := database.New()
	id := db.OpenDocument("mem://b.kieli", `fn f() { unknown_name }`, "kieli", 1)

	var collected diag.Collector
	db.Compile(id, &collected)

	require.Len(t, collected.Diagnostics, 1)
	assert.Equal(t, diag.KindUndefinedName, collected.Diagnostics[0].Kind)
	doc, _ := db.Document(id)
	assert.Equal(t, collected.Diagnostics, doc.Diagnostics)
}

func TestCompileConvertsLexErrorsToDiagnostics(t *testing.T) {
	db := database.New()
	id := db.OpenDocument("mem://c.kieli", `fn f() { "unterminated }`, "kieli", 1)

	var collected diag.Collector
	db.Compile(id, &collected)

	require.NotEmpty(t, collected.Diagnostics)
	assert.Equal(t, diag.KindUnterminatedString, collected.Diagnostics[0].Kind)
}

func TestChangeDocumentDiscardsPriorArenas(t *testing.T) {
	db := database.New()
	id := db.OpenDocument("mem://d.kieli", `fn f() : I32 { 1 }`, "kieli", 1)

	var collected diag.Collector
	db.Compile(id, &collected)
	doc, _ := db.Document(id)
	require.NotNil(t, doc.AST)

	db.ChangeDocument(id, `fn g() : I32 { 2 }`, 2)
	doc, _ = db.Document(id)
	assert.Nil(t, doc.AST)
	assert.Nil(t, doc.Info)
	assert.Equal(t, 2, doc.Version)
	assert.Equal(t, 1, doc.Revision)
}

func TestCloseDocumentRemovesPathLookup(t *testing.T) {
	db := database.New()
	id := db.OpenDocument("mem://e.kieli", `fn f() : I32 { 1 }`, "kieli", 1)

	_, ok := db.DocumentByPath("mem://e.kieli")
	require.True(t, ok)

	db.CloseDocument(id)

	_, ok = db.DocumentByPath("mem://e.kieli")
	assert.False(t, ok)
	_, ok = db.Document(id)
	assert.False(t, ok)
}

func TestCompileWithUnknownDocumentIdReportsInternalDiagnostic(t *testing.T) {
	db := database.New()
	var collected diag.Collector
	db.Compile(database.DocumentId(99), &collected)

	require.Len(t, collected.Diagnostics, 1)
	assert.Equal(t, diag.KindInternal, collected.Diagnostics[0].Kind)
}

func TestOpenDocumentSharesStringPoolAcrossDocuments(t *testing.T) {
	db := database.New()
	id1 := db.OpenDocument("mem://f.kieli", `fn shared() : I32 { 1 }`, "kieli", 1)
	id2 := db.OpenDocument("mem://g.kieli", `fn shared() : I32 { 2 }`, "kieli", 1)

	var c1, c2 diag.Collector
	db.Compile(id1, &c1)
	db.Compile(id2, &c2)

	require.Empty(t, c1.Diagnostics)
	require.Empty(t, c2.Diagnostics)
}
