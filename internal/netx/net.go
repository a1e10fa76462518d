// Package netx streams a body to a presigned object-storage URL.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ProgressReader wraps an io.Reader and reports the running byte count
// after every read.
type ProgressReader struct {
	Reader   io.Reader
	Total    int64
	OnUpdate func(loaded, total int64)

	loaded int64
}

func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.Reader.Read(p)
	if n > 0 {
		pr.loaded += int64(n)
		if pr.OnUpdate != nil {
			pr.OnUpdate(pr.loaded, pr.Total)
		}
	}
	return n, err
}

// Loaded is the number of bytes read so far.
func (pr *ProgressReader) Loaded() int64 {
	return pr.loaded
}

// PutPresigned sends body (exactly size bytes) to url with an HTTP PUT.
// Any status outside 2xx is an error carrying the response body.
func PutPresigned(ctx context.Context, client *http.Client, url string, body io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.ContentLength = size
	if size == 0 {
		req.Body = http.NoBody
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
