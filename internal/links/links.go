// Package links turns free-form references from the recommendation service into
// links a user can always open.
package links

import (
	"net/url"
	"strings"
)

const directPrefix = "http"

// SearchURL is the search engine query used for references that are not links.
const SearchURL = "https://www.google.com/search"

var defaultResolver = NewResolver(SearchURL)

// Resolver builds fallback search links on top of a configurable search endpoint.
type Resolver struct {
	base string
}

// NewResolver returns a resolver querying base. An empty base falls back to SearchURL.
func NewResolver(base string) *Resolver {
	base = strings.TrimSpace(base)
	if base == "" {
		base = SearchURL
	}
	return &Resolver{base: base}
}

// Resolve returns reference unchanged when it starts with "http", otherwise a
// search URL with reference as its q parameter.
func (r *Resolver) Resolve(reference string) string {
	if strings.HasPrefix(reference, directPrefix) {
		return reference
	}

	base := SearchURL
	if r != nil {
		base = r.base
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}

	return base + sep + "q=" + escape(reference)
}

// Resolve uses the default search endpoint.
func Resolve(reference string) string {
	return defaultResolver.Resolve(reference)
}

// escape percent-encodes reference so that both strict percent-decoding and
// form decoding give it back. Spaces become %20, never "+".
func escape(reference string) string {
	return strings.ReplaceAll(url.QueryEscape(reference), "+", "%20")
}
