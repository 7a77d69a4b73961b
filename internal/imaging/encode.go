package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/anthonynsimon/bild/imgio"
)

// EncodedImage is a PNG rendering of a buffer, ready to be returned to an MCP
// client as base64 text.
type EncodedImage struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Mode is the color mode of the buffer that was rendered.
	Mode string `json:"mode"`

	// ImageBase64 is the base64-encoded PNG data.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// EncodePNG renders b with ToImage(b, lo, hi) and encodes it as base64 PNG.
//
// Parameters:
//   - b: The buffer to render.
//   - mode: The mode name recorded in the result. It is not interpreted.
//   - lo, hi: The sample range mapped onto black..white (or 0..255 per channel).
//
// Returns:
//   - *EncodedImage: The encoded result.
//   - error: Non-nil if the buffer cannot be rendered or PNG encoding fails.
func EncodePNG(b *Buffer, mode string, lo, hi float64) (*EncodedImage, error) {
	img, err := ToImage(b, lo, hi)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return &EncodedImage{
		Width:       b.Width,
		Height:      b.Height,
		Mode:        mode,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
