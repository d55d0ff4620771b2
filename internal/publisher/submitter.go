// Package publisher turns processed note content into a Bluesky post:
// blobs are uploaded, the embed and facets are built and the record created.
package publisher

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_publisher.go -package=mocks skynotes/internal/publisher API,ImageFetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"skynotes/internal/bsky"
	"skynotes/internal/content"
	"skynotes/internal/contextutil"
	"skynotes/internal/storage"
)

const (
	// DefaultMaxBlobBytes is the Bluesky image blob limit.
	DefaultMaxBlobBytes = 976560

	maxDetailBody  = 100
	maxDetailError = 200
)

// API is the part of the Bluesky client the submitter needs.
type API interface {
	UploadBlob(ctx context.Context, accessToken string, data []byte, mimeType string) (*bsky.Blob, error)
	CreatePost(ctx context.Context, accessToken, repo string, record *bsky.PostRecord) (*bsky.CreateRecordOutput, error)
}

// ImageFetcher downloads link card thumbnails.
type ImageFetcher interface {
	FetchImage(ctx context.Context, rawURL string) ([]byte, string, error)
}

// Result is the outcome of a submission.
type Result struct {
	OK          bool
	PostURI     string
	ErrorDetail string
	// Record is the record that was sent, nil if submission failed before createRecord.
	Record *bsky.PostRecord
}

// Submitter builds and creates posts.
type Submitter struct {
	api          API
	thumbs       ImageFetcher
	maxBlobBytes int
	now          func() time.Time
	logger       *slog.Logger
}

// NewSubmitter creates a Submitter. A nil thumbs disables link card thumbnails;
// maxBlobBytes <= 0 selects DefaultMaxBlobBytes.
func NewSubmitter(api API, thumbs ImageFetcher, maxBlobBytes int) *Submitter {
	if maxBlobBytes <= 0 {
		maxBlobBytes = DefaultMaxBlobBytes
	}
	return &Submitter{
		api:          api,
		thumbs:       thumbs,
		maxBlobBytes: maxBlobBytes,
		now:          time.Now,
		logger:       slog.Default(),
	}
}

// Submit posts text with either images or a link card. Images win when both
// are given. The note itself is never touched; the caller records the result.
func (s *Submitter) Submit(ctx context.Context, sess *storage.SessionRecord, text string, link *storage.LinkPreview, images []content.Image) Result {
	logger := contextutil.LoggerFromContextOr(ctx, s.logger)

	if sess == nil || sess.AccessToken == "" {
		return Result{ErrorDetail: "no session"}
	}
	if sess.AccountID == "" {
		return Result{ErrorDetail: "session has no account id"}
	}

	record := &bsky.PostRecord{
		Type:      bsky.CollectionPost,
		Text:      text,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
		Facets:    linkFacets(text),
	}

	switch {
	case len(images) > 0:
		embed, err := s.imagesEmbed(ctx, sess.AccessToken, images)
		if err != nil {
			logger.WarnContext(ctx, "image upload failed", "error", err)
			return Result{ErrorDetail: "image upload failed: " + errorDetail(err)}
		}
		record.Embed = embed
	case link != nil:
		record.Embed = s.externalEmbed(ctx, sess.AccessToken, link)
	}

	out, err := s.api.CreatePost(ctx, sess.AccessToken, sess.AccountID, record)
	if err != nil {
		logger.WarnContext(ctx, "create post failed", "error", err)
		return Result{ErrorDetail: errorDetail(err), Record: record}
	}

	logger.InfoContext(ctx, "post created", "uri", out.URI, "handle", sess.AccountHandle)
	return Result{OK: true, PostURI: out.URI, Record: record}
}

func (s *Submitter) imagesEmbed(ctx context.Context, token string, images []content.Image) (*bsky.Embed, error) {
	if len(images) > storage.MaxImages {
		images = images[:storage.MaxImages]
	}

	embed := &bsky.Embed{Type: bsky.EmbedTypeImages}
	for i, img := range images {
		blob, err := s.upload(ctx, token, img.Data, img.MimeType)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i+1, err)
		}
		embed.Images = append(embed.Images, bsky.ImageEmbed{Alt: img.Alt, Image: blob})
	}
	return embed, nil
}

// externalEmbed builds a link card. A thumbnail that cannot be fetched or
// uploaded is left out.
func (s *Submitter) externalEmbed(ctx context.Context, token string, link *storage.LinkPreview) *bsky.Embed {
	logger := contextutil.LoggerFromContextOr(ctx, s.logger)

	ext := &bsky.External{
		URI:         link.URL,
		Title:       link.Title,
		Description: link.Description,
	}

	if link.Image != "" && s.thumbs != nil {
		data, mimeType, err := s.thumbs.FetchImage(ctx, link.Image)
		if err != nil {
			logger.InfoContext(ctx, "posting without thumbnail", "image", link.Image, "error", err)
		} else if blob, err := s.upload(ctx, token, data, mimeType); err != nil {
			logger.InfoContext(ctx, "posting without thumbnail", "image", link.Image, "error", err)
		} else {
			ext.Thumb = blob
		}
	}

	return &bsky.Embed{Type: bsky.EmbedTypeExternal, External: ext}
}

func (s *Submitter) upload(ctx context.Context, token string, data []byte, mimeType string) (*bsky.Blob, error) {
	data, mimeType, err := s.fitBlob(ctx, data, mimeType)
	if err != nil {
		return nil, err
	}
	return s.api.UploadBlob(ctx, token, data, mimeType)
}

// linkFacets marks every URL left in the text so it renders as a link.
func linkFacets(text string) []bsky.Facet {
	var facets []bsky.Facet
	for _, r := range content.AllURLs(text) {
		facets = append(facets, bsky.Facet{
			Type:  bsky.FacetTypeRichtext,
			Index: bsky.ByteSlice{ByteStart: r[0], ByteEnd: r[1]},
			Features: []bsky.FacetFeature{{
				Type: bsky.FacetFeatureLink,
				URI:  text[r[0]:r[1]],
			}},
		})
	}
	return facets
}

// errorDetail renders an error for a note's failure reason. API errors keep
// the status and a short body excerpt.
func errorDetail(err error) string {
	var apiErr *bsky.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("HTTP %d: %s", apiErr.StatusCode, truncate(apiErr.Body, maxDetailBody))
	}
	return truncate(err.Error(), maxDetailError)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
