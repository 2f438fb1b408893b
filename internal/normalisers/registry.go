// Package normalisers provides implementations of the Normaliser interface
// for various document formats. Each normaliser knows how to extract text
// content from a specific MIME type.
//
// Normalisers are registered with the Registry at startup.
package normalisers

import (
	"strings"
	"sync"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches documents to normalisers by MIME type. When several
// normalisers claim the same type the highest priority wins.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry creates a registry with all built-in normalisers.
func NewDefaultRegistry(builtins ...driven.Normaliser) *Registry {
	r := NewRegistry()
	for _, n := range builtins {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(normaliser driven.Normaliser) {
	if normaliser == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, normaliser)
}

// ForMIMEType returns the highest-priority normaliser for the type.
// Parameters such as "; charset=utf-8" are ignored when matching.
func (r *Registry) ForMIMEType(mimeType string) (driven.Normaliser, error) {
	base := baseMIMEType(mimeType)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var best driven.Normaliser
	for _, n := range r.normalisers {
		if !handles(n, base) {
			continue
		}
		if best == nil || n.Priority() > best.Priority() {
			best = n
		}
	}

	if best == nil {
		return nil, domain.ErrUnsupportedType
	}
	return best, nil
}

// SupportedMIMETypes returns all MIME types with a registered normaliser.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var types []string
	for _, n := range r.normalisers {
		for _, mt := range n.SupportedMIMETypes() {
			if !seen[mt] {
				seen[mt] = true
				types = append(types, mt)
			}
		}
	}
	return types
}

func handles(n driven.Normaliser, mimeType string) bool {
	for _, mt := range n.SupportedMIMETypes() {
		if strings.EqualFold(mt, mimeType) {
			return true
		}
	}
	return false
}

// baseMIMEType strips parameters and normalises case.
func baseMIMEType(mimeType string) string {
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
