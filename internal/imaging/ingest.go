package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"net/http"
	"strings"

	app_error "github.com/xenn00/room-chat/internal/errors"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxUploadBytes is the hard ceiling for a raw upload.
	MaxUploadBytes = 5 * 1024 * 1024
	// passthroughLimit: inputs at or below this size are stored as-is,
	// no decode, no re-encode.
	passthroughLimit = 200 * 1024
)

// Encoded is a self-describing image payload, embeddable inline in a
// message record.
type Encoded struct {
	Data        []byte
	ContentType string
}

// DataURL renders the payload in the inline base64 form the wire
// format uses.
func (e *Encoded) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", e.ContentType, base64.StdEncoding.EncodeToString(e.Data))
}

// ParseDataURL is the inverse of DataURL. Accepts only image payloads.
func ParseDataURL(s string) ([]byte, string, error) {
	if !strings.HasPrefix(s, "data:image/") {
		return nil, "", fmt.Errorf("not an inline image payload")
	}
	rest := strings.TrimPrefix(s, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, "", fmt.Errorf("missing base64 marker")
	}
	contentType := rest[:sep]
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 payload: %w", err)
	}
	return data, contentType, nil
}

// tierFor maps the INPUT size to a maximum width and JPEG quality.
// Bigger inputs get squeezed harder.
func tierFor(size int) (maxWidth, quality int) {
	switch {
	case size > 2*1024*1024:
		return 1024, 60
	case size > 1024*1024:
		return 1200, 70
	case size > 500*1024:
		return 1500, 75
	default:
		return 0, 80 // no width cap
	}
}

// Ingest bounds an uploaded image: non-image MIME types and payloads
// over MaxUploadBytes are rejected, small payloads pass through
// unchanged, anything larger is downscaled and re-encoded as JPEG with
// a quality tier picked from the input size.
func Ingest(raw []byte, mimeType string) (*Encoded, *app_error.AppError) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, app_error.BadRequest("Only image files are allowed!", "image")
	}

	if len(raw) > MaxUploadBytes {
		return nil, app_error.BadRequest("Image exceeds the 5MB upload limit.", "image")
	}

	if len(raw) <= passthroughLimit {
		return &Encoded{Data: raw, ContentType: mimeType}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, app_error.BadRequest("Uploaded file is not a decodable image.", "image")
	}

	maxWidth, quality := tierFor(len(raw))

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if maxWidth > 0 && width > maxWidth {
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, height*maxWidth/width))
		// nearest neighbour: the fast kernel, same trade-off the size
		// tiers already make
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), src, bounds, draw.Src, nil)
		src = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "Error processing image", "image")
	}

	return &Encoded{Data: buf.Bytes(), ContentType: "image/jpeg"}, nil
}
