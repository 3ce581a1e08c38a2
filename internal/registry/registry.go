// Package registry maps normalised file extensions to format handlers. A
// Registry is built once at startup and is read-only afterwards; there is no
// ambient global state.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oscproj/dockit/internal/handlers"
	"github.com/oscproj/dockit/internal/handlers/htmldoc"
	"github.com/oscproj/dockit/internal/handlers/pdf"
	"github.com/oscproj/dockit/internal/handlers/plaintext"
	"github.com/oscproj/dockit/internal/handlers/spreadsheet"
	"github.com/oscproj/dockit/internal/handlers/tabular"
	"github.com/oscproj/dockit/internal/handlers/word"
)

// Registry resolves file extensions to handlers.
type Registry struct {
	byExtension map[string]handlers.Handler
}

// New builds a Registry from the given handlers. Registering the same
// extension twice is a programming error and fails loudly.
func New(hs ...handlers.Handler) (*Registry, error) {
	r := &Registry{byExtension: make(map[string]handlers.Handler)}
	for _, h := range hs {
		for _, ext := range h.Extensions() {
			ext = strings.ToLower(ext)
			if existing, ok := r.byExtension[ext]; ok {
				return nil, fmt.Errorf("extension %q claimed by both %s and %s handlers", ext, existing.Name(), h.Name())
			}
			r.byExtension[ext] = h
		}
	}
	return r, nil
}

// Default returns the Registry with the full set of format handlers.
func Default() *Registry {
	r, err := New(
		word.New(),
		spreadsheet.New(),
		pdf.New(),
		tabular.New(),
		htmldoc.New(),
		plaintext.NewText(),
		plaintext.NewMarkdown(),
		plaintext.NewRTF(),
	)
	if err != nil {
		// The default handler set is static; a collision here is a bug.
		panic(err)
	}
	return r
}

// Lookup returns the handler for a file extension. The extension may carry a
// leading dot and any case.
func (r *Registry) Lookup(ext string) (handlers.Handler, bool) {
	h, ok := r.byExtension[Normalize(ext)]
	return h, ok
}

// Supports reports whether the extension has a registered handler.
func (r *Registry) Supports(ext string) bool {
	_, ok := r.Lookup(ext)
	return ok
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Handlers returns the distinct registered handlers sorted by name.
func (r *Registry) Handlers() []handlers.Handler {
	seen := make(map[string]handlers.Handler)
	for _, h := range r.byExtension {
		seen[h.Name()] = h
	}
	hs := make([]handlers.Handler, 0, len(seen))
	for _, h := range seen {
		hs = append(hs, h)
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i].Name() < hs[j].Name() })
	return hs
}

// Normalize lowercases an extension and strips the leading dot.
func Normalize(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}
