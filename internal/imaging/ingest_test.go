package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisePNG builds an incompressible PNG of the given dimensions, so the
// encoded size tracks the pixel count.
func noisePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		name     string
		size     int
		maxWidth int
		quality  int
	}{
		{"over 2MB", 3 * 1024 * 1024, 1024, 60},
		{"over 1MB", 1536 * 1024, 1200, 70},
		{"over 500KB", 600 * 1024, 1500, 75},
		{"small", 300 * 1024, 0, 80},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			maxWidth, quality := tierFor(tc.size)
			assert.Equal(t, tc.maxWidth, maxWidth)
			assert.Equal(t, tc.quality, quality)
		})
	}
}

func TestIngest_RejectsNonImage(t *testing.T) {
	_, err := Ingest([]byte("plain text"), "text/plain")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "Only image files are allowed!", err.Message)
}

func TestIngest_RejectsOversized(t *testing.T) {
	_, err := Ingest(make([]byte, MaxUploadBytes+1), "image/png")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestIngest_SmallPayloadPassesThrough(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 1, 2, 3}

	encoded, err := Ingest(raw, "image/png")
	require.Nil(t, err)
	assert.Equal(t, raw, encoded.Data, "small uploads are stored byte-for-byte")
	assert.Equal(t, "image/png", encoded.ContentType)
}

func TestIngest_RejectsUndecodableLargePayload(t *testing.T) {
	junk := make([]byte, passthroughLimit+1)

	_, err := Ingest(junk, "image/png")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestIngest_LargeImageIsReencodedAsJPEG(t *testing.T) {
	raw := noisePNG(t, 800, 200) // noise ≈ raw pixel size, well over the passthrough limit
	require.Greater(t, len(raw), passthroughLimit)

	encoded, err := Ingest(raw, "image/png")
	require.Nil(t, err)
	assert.Equal(t, "image/jpeg", encoded.ContentType)
	assert.Less(t, len(encoded.Data), len(raw), "re-encode must shrink a noise PNG")

	decoded, format, decodeErr := image.Decode(bytes.NewReader(encoded.Data))
	require.NoError(t, decodeErr)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 800, decoded.Bounds().Dx(), "below the tier's width cap, no scaling")
}

func TestIngest_WideImageIsDownscaled(t *testing.T) {
	raw := noisePNG(t, 2000, 200) // ~1.6MB of pixels lands in the >1MB tier (cap 1200)
	require.Greater(t, len(raw), 1024*1024)

	encoded, err := Ingest(raw, "image/png")
	require.Nil(t, err)

	decoded, _, decodeErr := image.Decode(bytes.NewReader(encoded.Data))
	require.NoError(t, decodeErr)
	assert.Equal(t, 1200, decoded.Bounds().Dx())
	assert.Equal(t, 120, decoded.Bounds().Dy(), "aspect ratio is preserved")
}

func TestDataURL_RoundTrip(t *testing.T) {
	enc := &Encoded{Data: []byte{1, 2, 3, 4}, ContentType: "image/png"}

	data, contentType, err := ParseDataURL(enc.DataURL())
	require.NoError(t, err)
	assert.Equal(t, enc.Data, data)
	assert.Equal(t, "image/png", contentType)
}

func TestParseDataURL_RejectsNonImage(t *testing.T) {
	_, _, err := ParseDataURL("data:text/html;base64,PGI+")
	assert.Error(t, err)

	_, _, err = ParseDataURL("data:image/png,raw-not-base64")
	assert.Error(t, err)
}
