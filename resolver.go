package jsongen

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// Cache resolves an absolute URL to raw schema bytes. The default
// Resolver has no fetcher and fails UnresolvableRef on any URI it hasn't
// already been given. Implementations may fetch over HTTP(S) or read
// local files; the core does neither directly (see cache.go).
type Cache interface {
	Resolve(url string) ([]byte, error)
}

// Resolver maintains the stack of base URIs (scopes) in effect while
// producing a schema, and a cache of previously-fetched/parsed schema
// nodes keyed by absolute URI. Every PushScope must be paired with a
// PopScope on all exit paths, including error paths.
type Resolver struct {
	scopes []string
	cache  map[string]Node
	fetch  Cache
}

// NewResolver builds a Resolver with no fetcher: remote $refs not already
// present in seed will fail UnresolvableRef. Pass a Cache via WithFetcher
// to support remote resolution.
func NewResolver(seed map[string]Node) *Resolver {
	cache := make(map[string]Node, len(seed))
	for k, v := range seed {
		cache[k] = v
	}
	return &Resolver{cache: cache}
}

// WithFetcher attaches a pluggable Cache collaborator used to resolve URIs
// not already cached.
func (r *Resolver) WithFetcher(c Cache) *Resolver {
	r.fetch = c
	return r
}

// PushScope pushes a new base URI, resolved against the current scope if
// relative.
func (r *Resolver) PushScope(uri string) {
	base := r.CurrentBase()
	resolved := resolveURI(base, uri)
	r.scopes = append(r.scopes, resolved)
}

// PopScope pops the most recently pushed scope. Calling PopScope more
// times than PushScope is a no-op; callers are expected to pair every push
// with exactly one pop (see generator.go's defer-based discipline).
func (r *Resolver) PopScope() {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// CurrentBase returns the base URI currently in effect, or "" if no scope
// has been pushed.
func (r *Resolver) CurrentBase() string {
	if len(r.scopes) == 0 {
		return ""
	}
	return r.scopes[len(r.scopes)-1]
}

// Depth reports how many scopes are currently pushed, for tests asserting
// the push/pop invariant.
func (r *Resolver) Depth() int {
	return len(r.scopes)
}

// Resolve dereferences a $ref string (absolute, relative, or a JSON
// pointer fragment of the current scope) to the (base URI, node) pair it
// names.
func (r *Resolver) Resolve(ref string) (string, Node, error) {
	base := r.CurrentBase()
	if strings.HasPrefix(ref, "#") {
		return r.resolveFragment(base, strings.TrimPrefix(ref[1:], "/"))
	}

	full := resolveURI(base, ref)
	docURI, fragment := splitFragment(full)

	doc, ok := r.cache[docURI]
	if !ok {
		if r.fetch == nil {
			return "", nil, newErr(UnresolvableRef, "", "no fetcher configured for %q", docURI)
		}
		raw, err := r.fetch.Resolve(docURI)
		if err != nil {
			return "", nil, wrapErr(UnresolvableRef, "", err, "fetching %q", docURI)
		}
		parsed, err := parseJSON(raw)
		if err != nil {
			return "", nil, wrapErr(UnresolvableRef, "", err, "parsing %q", docURI)
		}
		doc = parsed
		r.cache[docURI] = doc
	}

	if fragment == "" {
		return docURI, doc, nil
	}
	node, err := walkPointer(doc, fragment)
	if err != nil {
		return "", nil, wrapErr(UnresolvableRef, "", err, "resolving fragment %q in %q", fragment, docURI)
	}
	return docURI, node, nil
}

func (r *Resolver) resolveFragment(base, fragment string) (string, Node, error) {
	doc, ok := r.cache[base]
	if !ok {
		return "", nil, newErr(UnresolvableRef, "", "no document cached for base scope %q", base)
	}
	node, err := walkPointer(doc, fragment)
	if err != nil {
		return "", nil, wrapErr(UnresolvableRef, "", err, "resolving fragment %q in %q", fragment, base)
	}
	return base, node, nil
}

func splitFragment(uri string) (string, string) {
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		return uri[:i], strings.TrimPrefix(uri[i+1:], "/")
	}
	return uri, ""
}

func resolveURI(base, ref string) string {
	if base == "" {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// walkPointer walks a JSON pointer fragment ("/a/b/0") over the untyped
// DOM. Segment parsing/unescaping (the ~0/~1 and URL percent-encoding
// rules) is delegated to kaptinlin/jsonpointer; the walk itself is ours
// since our node is untyped where kaptinlin's Schema is a struct.
func walkPointer(doc Node, fragment string) (Node, error) {
	if fragment == "" {
		return doc, nil
	}
	segments := jsonpointer.Parse("/" + fragment)
	var cur any = doc
	for _, raw := range segments {
		seg, err := url.PathUnescape(raw)
		if err != nil {
			seg = raw
		}
		switch c := cur.(type) {
		case Node:
			next, ok := c[seg]
			if !ok {
				return nil, newErr(UnresolvableRef, "", "segment %q not found", seg)
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, newErr(UnresolvableRef, "", "segment %q is not a valid index", seg)
			}
			cur = c[idx]
		default:
			return nil, newErr(UnresolvableRef, "", "cannot descend into scalar at %q", seg)
		}
	}
	node, ok := asMap(cur)
	if !ok {
		return nil, newErr(UnresolvableRef, "", "pointer %q does not resolve to an object", fragment)
	}
	return node, nil
}
