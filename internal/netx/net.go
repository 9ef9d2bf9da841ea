package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// UploadToPresignedURL PUTs data to a presigned object-storage URL. The
// content type must match the one the URL was signed for.
func UploadToPresignedURL(ctx context.Context, client *http.Client, url string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

// ImageChecker decides whether a photo reference still resolves to an image.
type ImageChecker struct {
	Client *http.Client
}

// Fetchable reports whether ref can be displayed. Data URIs must carry an
// image media type, http(s) refs must answer 2xx with an image content type,
// and anything else (bundled relative assets) is assumed present.
func (c *ImageChecker) Fetchable(ctx context.Context, ref string) bool {
	lower := strings.ToLower(ref)
	switch {
	case strings.HasPrefix(lower, "data:"):
		return strings.HasPrefix(lower, "data:image/")
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return c.fetchHTTP(ctx, ref)
	default:
		return ref != ""
	}
}

func (c *ImageChecker) fetchHTTP(ctx context.Context, ref string) bool {
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, err := http.NewRequestWithContext(ctx, method, ref, nil)
		if err != nil {
			return false
		}
		resp, err := client.Do(req)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()

		// some object stores refuse HEAD on presigned GET urls
		if method == http.MethodHead && (resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusForbidden) {
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return false
		}
		ct := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Type")))
		return ct == "" || strings.HasPrefix(ct, "image/") || ct == "application/octet-stream"
	}
	return false
}
