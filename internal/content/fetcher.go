package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"skynotes/internal/storage"
)

const (
	defaultYouTubeOEmbedURL    = "https://www.youtube.com/oembed"
	defaultYouTubeThumbnailURL = "https://img.youtube.com/vi/%s/hqdefault.jpg"
	maxPageBytes               = 1 << 20
	maxImageBytes              = 5 << 20
	userAgent                  = "skynotes/1.0 (+link preview)"
)

// ErrNoMetadata is returned when a page has no usable preview metadata.
var ErrNoMetadata = errors.New("no preview metadata")

var youTubeIDPattern = regexp.MustCompile(
	`(?:youtube\.com/(?:watch\?(?:[^#\s]*&)?v=|shorts/|embed/|live/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// HTTPFetcher fetches link previews and images over HTTP with a bounded timeout.
type HTTPFetcher struct {
	// YouTubeOEmbedURL is the oEmbed endpoint used for YouTube links.
	YouTubeOEmbedURL string
	// YouTubeThumbnailURL is a format string taking the video ID.
	YouTubeThumbnailURL string

	client  *http.Client
	timeout time.Duration
}

// NewHTTPFetcher creates a fetcher whose every request is bounded by timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		YouTubeOEmbedURL:    defaultYouTubeOEmbedURL,
		YouTubeThumbnailURL: defaultYouTubeThumbnailURL,
		client:              &http.Client{Timeout: timeout},
		timeout:             timeout,
	}
}

// YouTubeID returns the video ID of a YouTube URL, or "".
func YouTubeID(rawURL string) string {
	m := youTubeIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// Fetch returns preview metadata for rawURL.
// YouTube links use oEmbed and a thumbnail derived from the video ID; other
// pages are fetched and their Open Graph tags extracted.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*storage.LinkPreview, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if id := YouTubeID(rawURL); id != "" {
		return f.fetchYouTube(ctx, rawURL, id), nil
	}
	return f.fetchOpenGraph(ctx, rawURL)
}

// FetchImage downloads an image and returns its bytes and MIME type.
func (f *HTTPFetcher) FetchImage(ctx context.Context, rawURL string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.get(ctx, rawURL, "image/*")
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}

	mimeType := resp.Header.Get("Content-Type")
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", fmt.Errorf("%w: %s", ErrNotImage, mimeType)
	}
	return data, mimeType, nil
}

// fetchYouTube never fails: the thumbnail is derived from the ID, so an oEmbed
// error only costs the title.
func (f *HTTPFetcher) fetchYouTube(ctx context.Context, rawURL, id string) *storage.LinkPreview {
	preview := &storage.LinkPreview{
		URL:   rawURL,
		Image: fmt.Sprintf(f.YouTubeThumbnailURL, id),
	}

	endpoint := fmt.Sprintf("%s?url=%s&format=json", f.YouTubeOEmbedURL, url.QueryEscape(rawURL))
	resp, err := f.get(ctx, endpoint, "application/json")
	if err != nil {
		return preview
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var oembed struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPageBytes)).Decode(&oembed); err != nil {
		return preview
	}
	preview.Title = oembed.Title
	if oembed.AuthorName != "" {
		preview.Description = "YouTube video by " + oembed.AuthorName
	}
	return preview
}

func (f *HTTPFetcher) fetchOpenGraph(ctx context.Context, rawURL string) (*storage.LinkPreview, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	resp, err := f.get(ctx, rawURL, "text/html")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return nil, fmt.Errorf("%w: content type %s", ErrNoMetadata, ct)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	preview := &storage.LinkPreview{
		URL:         rawURL,
		Title:       metaContent(doc, "og:title", "twitter:title"),
		Description: metaContent(doc, "og:description", "twitter:description", "description"),
		Image:       metaContent(doc, "og:image", "og:image:url", "twitter:image"),
	}
	if preview.Title == "" {
		preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if preview.Image != "" {
		if ref, err := url.Parse(preview.Image); err == nil {
			preview.Image = base.ResolveReference(ref).String()
		}
	}

	if preview.Title == "" && preview.Description == "" && preview.Image == "" {
		return nil, ErrNoMetadata
	}
	return preview, nil
}

func (f *HTTPFetcher) get(ctx context.Context, rawURL, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("bad status %d", resp.StatusCode)
	}
	return resp, nil
}

// metaContent returns the first non-empty content of a meta tag matching any
// of the keys by property or name.
func metaContent(doc *goquery.Document, keys ...string) string {
	for _, key := range keys {
		for _, attr := range []string{"property", "name"} {
			sel := doc.Find(fmt.Sprintf(`meta[%s="%s"]`, attr, key))
			if v := strings.TrimSpace(sel.First().AttrOr("content", "")); v != "" {
				return v
			}
		}
	}
	return ""
}
