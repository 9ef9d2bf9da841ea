package gift

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShareLink(t *testing.T) {
	link := BuildShareLink("https://gifts.example.com/", "open", "gift 1")
	assert.Equal(t, "https://gifts.example.com/open?id=gift+1", link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "gift 1", u.Query().Get(QueryID))

	// deterministic
	assert.Equal(t, link, BuildShareLink("https://gifts.example.com/", "open", "gift 1"))
}

func TestPreviewLink(t *testing.T) {
	assert.Equal(t, "/open?preview=true", PreviewLink("/open"))
	assert.Equal(t, "/?preview=true", PreviewLink(""))
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    Reference
		wantErr bool
	}{
		{name: "id", query: "id=abc", want: Reference{ID: "abc"}},
		{name: "preview", query: "preview=true", want: Reference{Preview: true}},
		{name: "id wins over preview", query: "id=abc&preview=true", want: Reference{ID: "abc"}},
		{name: "unrelated params ignored", query: "id=abc&utm=x", want: Reference{ID: "abc"}},
		{name: "id with auto", query: "id=abc&auto", want: Reference{ID: "abc", Auto: true}},
		{name: "id with auto value", query: "auto=1&id=abc", want: Reference{ID: "abc", Auto: true}},
		{name: "empty id", query: "id=", wantErr: true},
		{name: "preview false", query: "preview=false", wantErr: true},
		{name: "preview without value", query: "preview", wantErr: true},
		{name: "nothing", query: "", wantErr: true},
		{name: "other params only", query: "gift=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParseReference(q)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoReference)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		raw     string
		want    Reference
		wantErr bool
	}{
		{raw: "http://localhost:8080/open?id=g-1", want: Reference{ID: "g-1"}},
		{raw: "http://localhost:8080/open?id=g-1#top", want: Reference{ID: "g-1"}},
		{raw: "/open?preview=true", want: Reference{Preview: true}},
		{raw: "http://localhost:8080/open?id=g-1&auto", want: Reference{ID: "g-1", Auto: true}},
		{raw: "id=g-2", want: Reference{ID: "g-2"}},
		{raw: "g-3", want: Reference{ID: "g-3"}},
		{raw: "  ", wantErr: true},
		{raw: "http://localhost:8080/open", wantErr: true},
		{raw: "http://localhost:8080/open?foo=bar", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLink(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoReference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShareLinkRoundTrip(t *testing.T) {
	ref, err := ParseLink(BuildShareLink("http://localhost:8080", "/open", "0b6f7c1e-2f1a-4c43-9d8e-1b2c3d4e5f60"))
	require.NoError(t, err)
	assert.Equal(t, Reference{ID: "0b6f7c1e-2f1a-4c43-9d8e-1b2c3d4e5f60"}, ref)
	assert.Equal(t, "id=0b6f7c1e-2f1a-4c43-9d8e-1b2c3d4e5f60", ref.String())
}
