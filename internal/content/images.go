package content

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotImage is returned when an attachment does not decode to an image.
var ErrNotImage = errors.New("attachment is not an image")

// Image is a decoded image attachment.
type Image struct {
	Data     []byte
	MimeType string
	Alt      string
}

// DecodeImage decodes a data: URL or a bare base64 payload.
// The MIME type comes from the data: URL header, or is sniffed from the bytes.
func DecodeImage(raw string) (Image, error) {
	raw = strings.TrimSpace(raw)
	mimeType := ""
	payload := raw

	if strings.HasPrefix(raw, "data:") {
		header, data, ok := strings.Cut(raw, ",")
		if !ok {
			return Image{}, fmt.Errorf("malformed data URL")
		}
		if !strings.HasSuffix(header, ";base64") {
			return Image{}, fmt.Errorf("data URL is not base64 encoded")
		}
		mimeType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		payload = data
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some encoders drop padding
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return Image{}, fmt.Errorf("failed to decode base64 image: %w", err)
		}
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("empty image payload")
	}

	sniffed := http.DetectContentType(data)
	if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
		mimeType = sniffed
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return Image{}, fmt.Errorf("%w: %s", ErrNotImage, mimeType)
	}

	return Image{Data: data, MimeType: mimeType}, nil
}

// inlineImages returns data: URL sources and alt texts of <img> elements in an
// HTML fragment. Remote sources are not included.
func inlineImages(src string) (sources, alts []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, nil
	}
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("src"); ok && strings.HasPrefix(v, "data:") {
			sources = append(sources, v)
			alts = append(alts, s.AttrOr("alt", ""))
		}
	})
	return sources, alts
}
