package media

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/dmitrijs2005/giftbox/internal/gift"
)

// DataURI encodes f as data:<type>;base64,<payload>.
func DataURI(f *gift.MediaFile) string {
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

var errNotDataURI = errors.New("not a base64 data uri")

// DecodeDataURI reverses DataURI.
func DecodeDataURI(uri string) (contentType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errNotDataURI
	}
	contentType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errNotDataURI
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return contentType, data, nil
}

// IsImage reports whether f carries an image media type.
func IsImage(f *gift.MediaFile) bool {
	return f != nil && strings.HasPrefix(strings.ToLower(f.ContentType), "image/")
}
