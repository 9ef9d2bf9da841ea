package gift

import (
	"net/url"
	"strings"
)

// Query parameters understood by the reveal page.
const (
	QueryID      = "id"
	QueryPreview = "preview"
	QueryAuto    = "auto"
)

// Reference is what a share link points at: a stored gift or the preview.
// Auto is set when the link carries the auto parameter; it never changes
// which gift is loaded.
type Reference struct {
	ID      string
	Preview bool
	Auto    bool
}

// OpensAutomatically reports whether the box opens without a user action.
func (r Reference) OpensAutomatically() bool {
	return r.Preview || r.Auto
}

// IsZero reports whether the reference points at nothing.
func (r Reference) IsZero() bool {
	return r.ID == "" && !r.Preview
}

func (r Reference) String() string {
	switch {
	case r.ID != "":
		return QueryID + "=" + r.ID
	case r.Preview:
		return QueryPreview + "=true"
	default:
		return "none"
	}
}

// BuildShareLink returns <origin><revealPath>?id=<id>. It does no I/O.
func BuildShareLink(origin, revealPath, id string) string {
	q := url.Values{}
	q.Set(QueryID, id)
	return strings.TrimRight(origin, "/") + normalizePath(revealPath) + "?" + q.Encode()
}

// PreviewLink returns <revealPath>?preview=true.
func PreviewLink(revealPath string) string {
	return normalizePath(revealPath) + "?" + QueryPreview + "=true"
}

// ParseReference recognises exactly two query forms: a non-empty id, or
// preview=true. The id wins when both are present. Anything else is
// ErrNoReference. An auto parameter, with any value, marks an id reference
// for opening on load.
func ParseReference(q url.Values) (Reference, error) {
	if id := strings.TrimSpace(q.Get(QueryID)); id != "" {
		return Reference{ID: id, Auto: q.Has(QueryAuto)}, nil
	}
	if q.Get(QueryPreview) == "true" {
		return Reference{Preview: true}, nil
	}
	return Reference{}, ErrNoReference
}

// ParseLink accepts a full share link, a bare query string ("id=..." or
// "?preview=true") or a bare gift id.
func ParseLink(raw string) (Reference, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Reference{}, ErrNoReference
	}

	if strings.Contains(raw, "?") || strings.Contains(raw, "=") {
		query := raw
		if i := strings.Index(raw, "?"); i >= 0 {
			query = raw[i+1:]
		}
		if i := strings.Index(query, "#"); i >= 0 {
			query = query[:i]
		}
		q, err := url.ParseQuery(query)
		if err != nil {
			return Reference{}, ErrNoReference
		}
		return ParseReference(q)
	}

	if strings.ContainsAny(raw, "/ ") {
		return Reference{}, ErrNoReference
	}
	return Reference{ID: raw}, nil
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}
