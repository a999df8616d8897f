// Package imaging applies the gallery's pixel transforms. Every transform
// decodes into a surface it owns exclusively, mutates it, and re-encodes;
// callers swap the result into the gallery only after a successful encode.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	apperrors "github.com/multikonnect/listing-service/pkg/errors"
)

const dataURLPrefix = "data:"

// Surface is a mutable pixel buffer owned by exactly one transform at a
// time. It is never shared with the gallery; images round-trip through
// data URLs at the boundary.
type Surface struct {
	img *image.NRGBA
}

// NewSurface wraps an NRGBA buffer.
func NewSurface(img *image.NRGBA) *Surface {
	return &Surface{img: img}
}

// Decode parses raw image bytes (PNG, JPEG, or GIF) into a surface.
func Decode(data []byte) (*Surface, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.TransformFailed("decode", err)
	}
	b := src.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	return &Surface{img: nrgba}, nil
}

// DecodeDataURL parses a base64 data URL into a surface.
func DecodeDataURL(url string) (*Surface, error) {
	if !strings.HasPrefix(url, dataURLPrefix) {
		return nil, apperrors.TransformFailed("decode", fmt.Errorf("not a data URL"))
	}
	_, payload, ok := strings.Cut(url, ";base64,")
	if !ok {
		return nil, apperrors.TransformFailed("decode", fmt.Errorf("data URL is not base64 encoded"))
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, apperrors.TransformFailed("decode", err)
	}
	return Decode(raw)
}

// EncodeDataURL serializes the surface as a PNG data URL. PNG keeps the
// alpha channel the transforms rely on.
func (s *Surface) EncodeDataURL() (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.img); err != nil {
		return "", apperrors.TransformFailed("encode", err)
	}
	return dataURLPrefix + "image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Bounds returns the surface dimensions.
func (s *Surface) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Image exposes the underlying buffer for tests and composition.
func (s *Surface) Image() *image.NRGBA {
	return s.img
}

// Clone copies the surface so the original stays untouched.
func (s *Surface) Clone() *Surface {
	dst := image.NewNRGBA(s.img.Bounds())
	copy(dst.Pix, s.img.Pix)
	return &Surface{img: dst}
}

// brightness is the mean of the RGB channels.
func brightness(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3
}
