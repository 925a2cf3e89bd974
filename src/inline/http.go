package inline

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/sofmeright/reviewbadge/src/blob"
)

// httpClient wraps a standard http.Client with a fetch helper.
type httpClient struct {
	client *http.Client
}

// newHTTPClient creates a client with the given timeout in seconds.
func newHTTPClient(timeoutSecs int) *httpClient {
	if timeoutSecs <= 0 {
		timeoutSecs = 10
	}
	return &httpClient{
		client: &http.Client{
			Timeout: time.Duration(timeoutSecs) * time.Second,
		},
	}
}

// fetch GETs url and returns the body and its image MIME type.
// A positive limit caps how much of the body is read.
func (h *httpClient) fetch(ctx context.Context, url string, limit int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("inline: create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("inline: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("inline: GET %s: status %d", url, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if limit > 0 {
		// One extra byte lets the caller see the limit was exceeded.
		body = io.LimitReader(resp.Body, limit+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("inline: read %s: %w", url, err)
	}

	mimeType := ""
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, perr := mime.ParseMediaType(ct); perr == nil {
			mimeType = mt
		}
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = blob.DetectMIME(data, req.URL.Path)
	}
	return data, mimeType, nil
}
