// Package content turns a stored note into what gets posted: plain text,
// an optional link card and decoded images.
package content

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_link_fetcher.go -package=mocks skynotes/internal/content LinkFetcher

import (
	"context"
	"fmt"
	"log/slog"

	"skynotes/internal/contextutil"
	"skynotes/internal/storage"
)

// LinkFetcher looks up preview metadata for a URL.
type LinkFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*storage.LinkPreview, error)
}

// Content is a note ready for submission. Link and Images are never both set.
type Content struct {
	Text   string
	Link   *storage.LinkPreview
	Images []Image
}

// Transformer converts notes into Content.
type Transformer struct {
	fetcher LinkFetcher
	logger  *slog.Logger
}

// NewTransformer creates a Transformer. A nil fetcher disables link lookups.
func NewTransformer(fetcher LinkFetcher) *Transformer {
	return &Transformer{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
}

// ToPlainText returns the note's text with markup and inline images removed.
// When the note carries a custom link preview, its URL is removed too because
// the link is shown as a card instead.
func (t *Transformer) ToPlainText(note *storage.NoteRecord) string {
	text := HTMLToText(note.Content)
	if note.CustomLinkPreview != nil {
		text = StripURL(text, note.CustomLinkPreview.URL)
	}
	return text
}

// ResolveLinkPreview returns the note's custom preview if present, otherwise
// fetches metadata for the first URL in the text. Fetch failures mean no preview.
func (t *Transformer) ResolveLinkPreview(ctx context.Context, note *storage.NoteRecord) *storage.LinkPreview {
	if note.CustomLinkPreview != nil {
		p := *note.CustomLinkPreview
		return &p
	}
	if t.fetcher == nil {
		return nil
	}

	link := FirstURL(HTMLToText(note.Content))
	if link == "" {
		return nil
	}

	preview, err := t.fetcher.Fetch(ctx, link)
	if err != nil {
		contextutil.LoggerFromContextOr(ctx, t.logger).DebugContext(ctx, "no link preview", "url", link, "error", err)
		return nil
	}
	return preview
}

// Images decodes the note's attachments, falling back to data: URL images
// inlined in the content. At most storage.MaxImages are returned.
func (t *Transformer) Images(ctx context.Context, note *storage.NoteRecord) ([]Image, error) {
	sources := note.ImageData
	var alts []string
	if len(sources) == 0 {
		sources, alts = inlineImages(note.Content)
	}
	if len(sources) > storage.MaxImages {
		contextutil.LoggerFromContextOr(ctx, t.logger).WarnContext(ctx, "dropping extra images",
			"note_id", note.ID, "images", len(sources), "max", storage.MaxImages)
		sources = sources[:storage.MaxImages]
	}

	images := make([]Image, 0, len(sources))
	for i, raw := range sources {
		img, err := DecodeImage(raw)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i+1, err)
		}
		if i < len(alts) {
			img.Alt = alts[i]
		}
		images = append(images, img)
	}
	return images, nil
}

// Process builds the Content for a note. Images take priority over a link
// card, and no link lookup happens when the note has images.
func (t *Transformer) Process(ctx context.Context, note *storage.NoteRecord) (Content, error) {
	images, err := t.Images(ctx, note)
	if err != nil {
		return Content{}, err
	}

	c := Content{
		Text:   t.ToPlainText(note),
		Images: images,
	}
	if len(images) > 0 {
		return c, nil
	}

	if link := t.ResolveLinkPreview(ctx, note); link != nil {
		c.Link = link
		c.Text = StripURL(c.Text, link.URL)
	}
	return c, nil
}
