package studio

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotDownloadable = errors.New("record has no video to download")

var videoExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

// Download saves a completed record's video into dir and returns the file path.
// data: URIs are decoded locally; http(s) references are fetched with hc.
func Download(ctx context.Context, hc *http.Client, rec Record, dir string) (string, error) {
	if rec.Status != StatusCompleted || rec.VideoURL == "" {
		return "", ErrNotDownloadable
	}
	if hc == nil {
		hc = http.DefaultClient
	}

	var (
		body     io.ReadCloser
		mimeType string
	)

	switch {
	case strings.HasPrefix(rec.VideoURL, "data:"):
		data, mt, err := decodeDataURI(rec.VideoURL)
		if err != nil {
			return "", err
		}
		body, mimeType = io.NopCloser(bytes.NewReader(data)), mt
	case strings.HasPrefix(rec.VideoURL, "http://"), strings.HasPrefix(rec.VideoURL, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rec.VideoURL, nil)
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		resp, err := hc.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to fetch video: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return "", fmt.Errorf("failed to fetch video: HTTP %d", resp.StatusCode)
		}
		body, mimeType = resp.Body, resp.Header.Get("Content-Type")
	default:
		return "", fmt.Errorf("%w: unsupported reference %q", ErrNotDownloadable, schemeOf(rec.VideoURL))
	}
	defer body.Close()

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	ext, ok := videoExtensions[strings.TrimSpace(strings.Split(mimeType, ";")[0])]
	if !ok {
		ext = ".mp4"
	}
	path := filepath.Join(dir, "video-"+rec.ID+ext)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o640)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write video: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return path, nil
}

// decodeDataURI parses data:<mime>;base64,<payload>.
func decodeDataURI(uri string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, "", fmt.Errorf("%w: malformed data URI", ErrNotDownloadable)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URI: %w", err)
	}
	return data, strings.TrimSuffix(header, ";base64"), nil
}

func schemeOf(ref string) string {
	if scheme, _, ok := strings.Cut(ref, ":"); ok {
		return scheme
	}
	return ref
}
