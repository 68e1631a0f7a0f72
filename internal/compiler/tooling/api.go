// Package tooling exposes the compiler as a position-addressed query API
// for an editor: hover, go-to-definition, find-references, document
// symbols, and completions, all backed by one database.Database (§6).
//
// Database itself is deliberately not internally synchronized (§5: two
// concurrent compilations must take an external mutex or operate on
// disjoint Databases). API is where that external mutex actually lives:
// every query and every document-lifecycle call takes API's own lock for
// the duration of its Database call, so a server built on API can route
// concurrent LSP requests straight through without its own locking.
package tooling

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kieli-lang/kieli/internal/compiler/database"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
)

// Config tunes API behavior.
type Config struct {
	// TraceRequests makes RequestID mint a fresh id per call, for a server
	// that wants to correlate a slow query against its own request log.
	TraceRequests bool
}

// API is the thread-safe query surface over a Database.
type API struct {
	db     *database.Database
	mu     sync.RWMutex
	config Config
}

// NewAPI returns an API over a fresh, empty Database.
func NewAPI() *API {
	return NewAPIWithConfig(Config{})
}

// NewAPIWithConfig returns an API configured as given.
func NewAPIWithConfig(config Config) *API {
	return &API{db: database.New(), config: config}
}

// RequestID mints a fresh id for one query, for a caller that logs
// queries and wants to correlate one across its own handlers. It returns
// the empty string when TraceRequests is off.
func (a *API) RequestID() string {
	if !a.config.TraceRequests {
		return ""
	}
	return uuid.NewString()
}

// OpenDocument opens path and compiles it immediately, returning the
// diagnostics that compilation produced.
func (a *API) OpenDocument(path, text, languageID string, version int) (database.DocumentId, []diag.Diagnostic) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.db.OpenDocument(path, text, languageID, version)
	var collected diag.Collector
	a.db.Compile(id, &collected)
	return id, collected.Diagnostics
}

// ChangeDocument replaces id's text and recompiles it, returning the new
// diagnostics.
func (a *API) ChangeDocument(id database.DocumentId, text string, version int) []diag.Diagnostic {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.db.ChangeDocument(id, text, version)
	var collected diag.Collector
	a.db.Compile(id, &collected)
	return collected.Diagnostics
}

// CloseDocument releases id.
func (a *API) CloseDocument(id database.DocumentId) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.db.CloseDocument(id)
}

// Diagnostics returns the diagnostics produced by id's last Compile call.
func (a *API) Diagnostics(id database.DocumentId) ([]diag.Diagnostic, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	doc, ok := a.db.Document(id)
	if !ok {
		return nil, false
	}
	return doc.Diagnostics, true
}

// DocumentID looks up an already-open document's id by its path.
func (a *API) DocumentID(path string) (database.DocumentId, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.db.DocumentByPath(path)
}
