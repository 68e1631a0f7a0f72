package resolver

import (
	"strings"

	"golang.org/x/mod/module"

	"github.com/kieli-lang/kieli/internal/compiler/ast"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
)

// checkImports validates the lexical shape of every import path's segments
// (§4.2's `import path` grammar rule) using the same segment-syntax rules
// Go's own import paths follow: non-empty elements, no `.`/`..` elements, no
// disallowed characters. An import whose path can never denote a real
// module has no definition to resolve against, so it is reported the same
// way an unresolvable name is (§7 reuses categories rather than growing a
// taxonomy entry per caller).
func (c *Context) checkImports(imports []ast.Import) {
	for _, imp := range imports {
		path := strings.Join(imp.Segments, "/")
		if err := module.CheckImportPath(path); err != nil {
			c.report(diag.New(diag.KindUndefinedName, diag.SeverityError, imp.Range,
				"invalid import path '%s': %s", path, err))
		}
	}
}
