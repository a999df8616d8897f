package imaging

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidSurface(w, h int, c color.NRGBA) *Surface {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return NewSurface(img)
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	src := solidSurface(3, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	url, err := src.EncodeDataURL()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	decoded, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, src.Image().Pix, decoded.Image().Pix)
}

func TestDecodeDataURLInvalid(t *testing.T) {
	_, err := DecodeDataURL("https://example.com/a.png")
	assert.Error(t, err)

	_, err = DecodeDataURL("data:image/png,plain")
	assert.Error(t, err)

	_, err = DecodeDataURL("data:image/png;base64,!!!not-base64!!!")
	assert.Error(t, err)

	_, err = DecodeDataURL("data:image/png;base64,aGVsbG8=")
	assert.Error(t, err, "valid base64 but not an image")
}

func TestRemoveBackground(t *testing.T) {
	// 2x2: top row white, bottom row black
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.NRGBA{A: 255}
	img.SetNRGBA(0, 0, white)
	img.SetNRGBA(1, 0, white)
	img.SetNRGBA(0, 1, black)
	img.SetNRGBA(1, 1, black)

	s := NewSurface(img)
	s.RemoveBackground()

	assert.EqualValues(t, 0, s.Image().NRGBAAt(0, 0).A)
	assert.EqualValues(t, 0, s.Image().NRGBAAt(1, 0).A)
	assert.EqualValues(t, 255, s.Image().NRGBAAt(0, 1).A)
	assert.EqualValues(t, 255, s.Image().NRGBAAt(1, 1).A)
}

func TestRemoveBackgroundThreshold(t *testing.T) {
	s := solidSurface(1, 1, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
	s.RemoveBackground()
	assert.EqualValues(t, 255, s.Image().NRGBAAt(0, 0).A, "brightness exactly 240 is kept")

	s = solidSurface(1, 1, color.NRGBA{R: 241, G: 241, B: 241, A: 255})
	s.RemoveBackground()
	assert.EqualValues(t, 0, s.Image().NRGBAAt(0, 0).A)
}

func TestAutoCrop(t *testing.T) {
	// 100x60 white image with a dark 10x10 block at (45,25)
	s := solidSurface(100, 60, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	for y := 25; y < 35; y++ {
		for x := 45; x < 55; x++ {
			s.Image().SetNRGBA(x, y, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
		}
	}

	s.AutoCrop()

	// padded box is 50x50 (10px content + 20px padding each side), square
	b := s.Bounds()
	assert.Equal(t, b.Dx(), b.Dy(), "canvas is square")
	assert.Equal(t, 50, b.Dx())

	// content block sits centered, background is white
	center := s.Image().NRGBAAt(25, 25)
	assert.EqualValues(t, 50, center.R)
	corner := s.Image().NRGBAAt(0, 0)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, corner)
}

func TestAutoCropPaddingClampedAtEdges(t *testing.T) {
	// content block touching the top-left corner, padding cannot extend
	// beyond the image
	s := solidSurface(40, 40, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			s.Image().SetNRGBA(x, y, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
		}
	}

	s.AutoCrop()
	assert.Equal(t, 25, s.Bounds().Dx(), "5px content + 20px padding on one side only")
	assert.Equal(t, s.Bounds().Dx(), s.Bounds().Dy())
}

func TestAutoCropNoContent(t *testing.T) {
	s := solidSurface(10, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	s.AutoCrop()
	assert.Equal(t, 10, s.Bounds().Dx(), "all-background image is left unchanged")
}

func TestSpin(t *testing.T) {
	s := solidSurface(8, 8, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	frames := s.Spin()

	require.Len(t, frames, SpinFrameCount)
	for i, f := range frames {
		assert.Equal(t, s.Bounds(), f.Bounds(), "frame %d keeps source dimensions", i)
	}

	// frame 0 is the identity rotation
	assert.Equal(t, s.Image().Pix, frames[0].Image().Pix)
}

func TestRotatePreservesCenter(t *testing.T) {
	s := solidSurface(9, 9, color.NRGBA{A: 0})
	s.Image().SetNRGBA(4, 4, color.NRGBA{R: 200, A: 255})

	rotated := s.Rotate(90)
	assert.EqualValues(t, 200, rotated.Image().NRGBAAt(4, 4).R, "center pixel survives rotation")
}

func TestWatermark(t *testing.T) {
	s := solidSurface(200, 100, color.NRGBA{R: 30, G: 30, B: 30, A: 255})
	before := append([]uint8(nil), s.Image().Pix...)

	s.Watermark()
	assert.NotEqual(t, before, s.Image().Pix, "watermark modifies bottom rows")

	// only the bottom strip changes
	topChanged := false
	for i := 0; i < 200*4*50; i++ {
		if s.Image().Pix[i] != before[i] {
			topChanged = true
			break
		}
	}
	assert.False(t, topChanged, "top half untouched")
}

func TestEnhance(t *testing.T) {
	s := solidSurface(1, 1, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	s.Enhance()

	// gray input stays gray: saturation about its own luma is a no-op
	got := s.Image().NRGBAAt(0, 0)
	assert.Equal(t, got.R, got.G)
	assert.Equal(t, got.G, got.B)
	// 100 * 1.1 = 110, (110-128)*1.2+128 = 106.4
	assert.EqualValues(t, 106, got.R)
	assert.EqualValues(t, 255, got.A, "alpha untouched")
}

func TestEnhanceClamps(t *testing.T) {
	s := solidSurface(1, 1, color.NRGBA{R: 250, G: 250, B: 250, A: 255})
	s.Enhance()
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, s.Image().NRGBAAt(0, 0))

	s = solidSurface(1, 1, color.NRGBA{A: 255})
	s.Enhance()
	assert.Equal(t, color.NRGBA{A: 255}, s.Image().NRGBAAt(0, 0))
}

func TestEnhanceBoostsSaturation(t *testing.T) {
	s := solidSurface(1, 1, color.NRGBA{R: 150, G: 100, B: 100, A: 255})
	s.Enhance()

	got := s.Image().NRGBAAt(0, 0)
	assert.Greater(t, got.R, got.G, "red channel stays dominant")
}

func TestCloneIsIndependent(t *testing.T) {
	s := solidSurface(2, 2, color.NRGBA{R: 10, A: 255})
	c := s.Clone()
	c.Image().SetNRGBA(0, 0, color.NRGBA{R: 99, A: 255})

	assert.EqualValues(t, 10, s.Image().NRGBAAt(0, 0).R)
	assert.EqualValues(t, 99, c.Image().NRGBAAt(0, 0).R)
}
