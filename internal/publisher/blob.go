package publisher

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"

	"skynotes/internal/contextutil"
)

const (
	jpegQuality    = 80
	maxResizeSteps = 8
	resizeFactor   = 0.75
	// maxDimension bounds the long edge before the first size check.
	maxDimension = 2000
)

// fitBlob returns data unchanged when it fits the blob limit. Larger images are
// downscaled and re-encoded as JPEG until they fit.
func (s *Submitter) fitBlob(ctx context.Context, data []byte, mimeType string) ([]byte, string, error) {
	if len(data) <= s.maxBlobBytes {
		return data, mimeType, nil
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s image of %s: %w", mimeType, humanize.Bytes(uint64(len(data))), err)
	}

	img := boundLongEdge(src, maxDimension)
	for step := 0; step < maxResizeSteps; step++ {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
			return nil, "", fmt.Errorf("failed to encode image: %w", err)
		}
		if buf.Len() <= s.maxBlobBytes {
			contextutil.LoggerFromContextOr(ctx, s.logger).DebugContext(ctx, "image downscaled",
				"from", humanize.Bytes(uint64(len(data))),
				"to", humanize.Bytes(uint64(buf.Len())),
				"width", img.Bounds().Dx(),
				"height", img.Bounds().Dy())
			return buf.Bytes(), "image/jpeg", nil
		}

		b := img.Bounds()
		w := int(float64(b.Dx()) * resizeFactor)
		if w < 1 {
			break
		}
		img = imaging.Resize(img, w, 0, imaging.Lanczos)
	}

	return nil, "", fmt.Errorf("image of %s does not fit in %s", humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(s.maxBlobBytes)))
}

func boundLongEdge(img image.Image, limit int) image.Image {
	b := img.Bounds()
	if b.Dx() <= limit && b.Dy() <= limit {
		return img
	}
	if b.Dx() >= b.Dy() {
		return imaging.Resize(img, limit, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, limit, imaging.Lanczos)
}
