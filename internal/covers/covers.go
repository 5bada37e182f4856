// Package covers downloads book cover images and produces resized copies
// suitable for the storefront listing.
package covers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/booksadda/storefront/internal/errors"
)

const (
	defaultMaxWidth = 400
	defaultTimeout  = 30 * time.Second
)

// Downloader fetches cover images over HTTP and stores resized JPEGs.
type Downloader struct {
	httpClient *http.Client
	outputDir  string
	maxWidth   int
}

// NewDownloader creates a Downloader writing into outputDir.
func NewDownloader(outputDir string) *Downloader {
	return &Downloader{
		httpClient: &http.Client{Timeout: defaultTimeout},
		outputDir:  outputDir,
		maxWidth:   defaultMaxWidth,
	}
}

// WithHTTPClient replaces the HTTP client (used in tests).
func (d *Downloader) WithHTTPClient(client *http.Client) *Downloader {
	if client != nil {
		d.httpClient = client
	}
	return d
}

// Fetch downloads the cover at imageURL, resizes it to the configured
// maximum width and saves it as "<title> - cover.jpg". It returns the path
// of the saved file. An existing file is kept unless overwrite is set.
func (d *Downloader) Fetch(ctx context.Context, title, imageURL string, overwrite bool) (string, error) {
	if imageURL == "" {
		return "", fmt.Errorf("no cover image URL for %q", title)
	}

	savePath := filepath.Join(d.outputDir, Filename(title))
	if _, err := os.Stat(savePath); err == nil && !overwrite {
		return savePath, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", errors.NewServiceError("fetch cover", 0, err.Error())
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", errors.NewServiceError("fetch cover", 0, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.NewServiceError("fetch cover", resp.StatusCode, "unexpected status downloading cover")
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode cover image: %w", err)
	}

	if img.Bounds().Dx() > d.maxWidth {
		img = imaging.Resize(img, d.maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create covers directory: %w", err)
	}

	if err := imaging.Save(img, savePath, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to save cover: %w", err)
	}
	return savePath, nil
}

// Filename builds the cover filename for a book title.
func Filename(title string) string {
	title = strings.ReplaceAll(title, ":", " -")
	title = strings.ReplaceAll(title, "/", "-")
	title = strings.ReplaceAll(title, "\\", "-")
	return title + " - cover.jpg"
}
