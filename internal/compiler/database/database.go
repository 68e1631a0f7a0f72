// Package database owns the document store and string pool that thread
// data between compilation stages (§4.5, §3.1): it is the one piece of
// mutable, cross-document state in the whole front end. Everything else
// (lexer, parser, desugarer, resolver) is a pure function from its inputs
// to a result plus diagnostics; Database is where those results are kept
// alive across `open`/`change`/`close`/`compile` calls from an editor.
package database

import (
	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/cst"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/hir"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
	"github.com/kieli-lang/kieli/internal/compiler/resolver"
)

// DocumentId is a dense index into a Database's document table (§3.1).
// Ids from a closed or superseded revision are never reused or revalidated
// (§3.8): closing a document leaves its slot permanently nil rather than
// recycling the index.
type DocumentId int32

// Document holds one open document's text plus every arena the pipeline
// fills in when Compile runs. All of it is rebuilt from scratch on every
// Compile call (§3.8: "all arenas of a document are cleared and rebuilt on
// change"); there is no incremental re-parsing.
type Document struct {
	Path       string
	LanguageID string
	Text       string
	Version    int
	Revision   int

	Tokens []lexer.Token
	CST    *cst.Module
	AST    *ast.Module
	Info   *hir.Info
	Root   *resolver.Namespace

	Diagnostics []diag.Diagnostic
}

// Database is the document store and string pool shared by every document
// it holds. It is not internally synchronized (§5): a caller serving
// concurrent reads and writes across documents must take its own lock (the
// tooling layer's API type does exactly this).
type Database struct {
	documents []*Document
	paths     map[string]DocumentId
	strings   *stringPool
}

// New returns an empty Database.
func New() *Database {
	return &Database{
		paths:   map[string]DocumentId{},
		strings: newStringPool(),
	}
}

// OpenDocument creates a document for path with the given text and
// language id, returning its freshly minted DocumentId. Compile is not run
// automatically; the caller decides when to invoke it (§6.1).
func (db *Database) OpenDocument(path, text, languageID string, version int) DocumentId {
	id := DocumentId(len(db.documents))
	db.documents = append(db.documents, &Document{
		Path:       path,
		LanguageID: languageID,
		Text:       text,
		Version:    version,
	})
	db.paths[path] = id
	return id
}

// ChangeDocument replaces id's text and bumps its revision, discarding every
// arena from the previous revision (§3.8). A later Compile call rebuilds
// them from the new text.
func (db *Database) ChangeDocument(id DocumentId, newText string, newVersion int) {
	doc := db.documents[id]
	doc.Text = newText
	doc.Version = newVersion
	doc.Revision++
	doc.Tokens = nil
	doc.CST = nil
	doc.AST = nil
	doc.Info = nil
	doc.Root = nil
	doc.Diagnostics = nil
}

// CloseDocument removes id from path lookup and releases its arenas. The
// slot in the document table is left as a permanent tombstone rather than
// reused, so a stale DocumentId held by a caller fails Document lookups
// instead of silently resolving to an unrelated document.
func (db *Database) CloseDocument(id DocumentId) {
	doc := db.documents[id]
	if doc == nil {
		return
	}
	delete(db.paths, doc.Path)
	db.documents[id] = nil
}

// Document returns the document stored at id, or false if id is out of
// range or has been closed.
func (db *Database) Document(id DocumentId) (*Document, bool) {
	if int(id) < 0 || int(id) >= len(db.documents) {
		return nil, false
	}
	doc := db.documents[id]
	return doc, doc != nil
}

// DocumentByPath looks up an open document's id by its path (the URI ->
// DocId lookup named in §4.5).
func (db *Database) DocumentByPath(path string) (DocumentId, bool) {
	id, ok := db.paths[path]
	return id, ok
}
