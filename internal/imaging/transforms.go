package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// SpinFrameCount is the number of frames a 360 spin generates.
const SpinFrameCount = 36

// WatermarkText is the fixed overlay text.
const WatermarkText = "multikonnect.com"

const (
	backgroundBrightness = 240
	contentAlpha         = 10
	cropPadding          = 20
)

// RemoveBackground keys out near-white pixels: any pixel whose mean RGB
// brightness exceeds 240 gets alpha 0. A crude luma threshold, kept as is
// rather than improved.
func (s *Surface) RemoveBackground() {
	pix := s.img.Pix
	for i := 0; i < len(pix); i += 4 {
		if brightness(pix[i], pix[i+1], pix[i+2]) > backgroundBrightness {
			pix[i+3] = 0
		}
	}
}

// contentBox returns the tight bounding box of pixels that count as content
// (alpha above 10 and brightness below 240), and whether any exist.
func (s *Surface) contentBox() (image.Rectangle, bool) {
	b := s.img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := s.img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			o := row + (x-b.Min.X)*4
			p := s.img.Pix
			if p[o+3] > contentAlpha && brightness(p[o], p[o+1], p[o+2]) < backgroundBrightness {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// AutoCrop crops to the content bounding box expanded by 20px (clamped to
// the image), then centers that region on a square white canvas sized to the
// longer side of the padded box. Without any content pixels the surface is
// left unchanged.
func (s *Surface) AutoCrop() {
	box, ok := s.contentBox()
	if !ok {
		return
	}

	padded := box.Inset(-cropPadding).Intersect(s.img.Bounds())
	side := padded.Dx()
	if padded.Dy() > side {
		side = padded.Dy()
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, side, side))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	offset := image.Pt((side-padded.Dx())/2, (side-padded.Dy())/2)
	draw.Draw(canvas, padded.Sub(padded.Min).Add(offset), s.img, padded.Min, draw.Over)

	s.img = canvas
}

// Rotate renders the surface rotated by the given angle in degrees about its
// center onto a cleared canvas of the same dimensions, returning a new
// surface.
func (s *Surface) Rotate(degrees float64) *Surface {
	b := s.img.Bounds()
	dst := image.NewNRGBA(b)

	theta := degrees * math.Pi / 180
	sin, cos := math.Sincos(theta)
	cx := float64(b.Min.X+b.Max.X) / 2
	cy := float64(b.Min.Y+b.Max.Y) / 2

	m := f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}
	xdraw.ApproxBiLinear.Transform(dst, m, s.img, b, xdraw.Src, nil)
	return &Surface{img: dst}
}

// Spin generates the 360 spin frame set: frame i is the source rotated by
// i*10 degrees. The source surface is not modified.
func (s *Surface) Spin() []*Surface {
	frames := make([]*Surface, SpinFrameCount)
	step := 360.0 / SpinFrameCount
	for i := 0; i < SpinFrameCount; i++ {
		frames[i] = s.Rotate(float64(i) * step)
	}
	return frames
}

// Watermark overlays the fixed text at bottom-center: semi-transparent white
// fill over a dark outline.
func (s *Surface) Watermark() {
	face := basicfont.Face7x13
	width := font.MeasureString(face, WatermarkText).Ceil()

	b := s.img.Bounds()
	x := b.Min.X + (b.Dx()-width)/2
	y := b.Max.Y - face.Height

	drawText := func(dx, dy int, c color.NRGBA) {
		d := font.Drawer{
			Dst:  s.img,
			Src:  image.NewUniform(c),
			Face: face,
			Dot:  fixed.P(x+dx, y+dy),
		}
		d.DrawString(WatermarkText)
	}

	outline := color.NRGBA{A: 200}
	for _, off := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		drawText(off[0], off[1], outline)
	}
	drawText(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 200})
}

// Enhance applies the fixed brighten, contrast, saturate sequence per pixel.
// Channels are clamped to [0, 255] after every stage.
func (s *Surface) Enhance() {
	pix := s.img.Pix
	for i := 0; i < len(pix); i += 4 {
		r := float64(pix[i]) * 1.10
		g := float64(pix[i+1]) * 1.10
		b := float64(pix[i+2]) * 1.10
		r, g, b = clampF(r), clampF(g), clampF(b)

		r = clampF((r-128)*1.2 + 128)
		g = clampF((g-128)*1.2 + 128)
		b = clampF((b-128)*1.2 + 128)

		gray := 0.299*r + 0.587*g + 0.114*b
		r = clampF(gray + (r-gray)*1.15)
		g = clampF(gray + (g-gray)*1.15)
		b = clampF(gray + (b-gray)*1.15)

		pix[i] = uint8(r + 0.5)
		pix[i+1] = uint8(g + 0.5)
		pix[i+2] = uint8(b + 0.5)
	}
}

func clampF(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
