package spectral

import (
	"image"
	"image/color"
	"time"

	"github.com/gogpu/spectral/internal/cache"
	srgb "github.com/gogpu/spectral/internal/color"
	"github.com/gogpu/spectral/internal/parallel"
)

// CoeffImage is a grid of spectral coefficients, one per pixel.
type CoeffImage struct {
	Width, Height int
	// Pix holds coefficients in row-major order.
	Pix []Coeff
}

// NewCoeffImage allocates a w×h coefficient image filled with zero
// coefficients.
func NewCoeffImage(w, h int) *CoeffImage {
	return &CoeffImage{Width: w, Height: h, Pix: make([]Coeff, w*h)}
}

// At returns the coefficients of pixel (x, y).
func (m *CoeffImage) At(x, y int) Coeff {
	return m.Pix[y*m.Width+x]
}

// Set stores the coefficients of pixel (x, y).
func (m *CoeffImage) Set(x, y int, c Coeff) {
	m.Pix[y*m.Width+x] = c
}

// Mean returns the mean reflectance of every pixel in row-major order.
func (m *CoeffImage) Mean() []float32 {
	out := make([]float32, len(m.Pix))
	for i, c := range m.Pix {
		out[i] = Mean[float32](c)
	}
	return out
}

// Preview reconstructs every pixel under ig and returns an 8-bit sRGB image.
func (m *CoeffImage) Preview(ig *Integrator) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := range m.Height {
		for x := range m.Width {
			c := srgb.EncodeRGB8(IntegrateRGB[float32](ig, m.At(x, y)))
			img.SetNRGBA(x, y, color.NRGBA{R: c[0], G: c[1], B: c[2], A: 255})
		}
	}
	return img
}

// UpsampleImage converts every pixel of img into spectral coefficients.
//
// Pixels are treated as sRGB-encoded unless WithLinearInput is given.
// Alpha is ignored. Rows are processed in parallel and 8-bit colours are
// memoised, so images with few distinct colours are cheap.
func UpsampleImage(s *Store, img image.Image, opts ...UpsampleOption) (*CoeffImage, error) {
	var o upsampleOptions
	for _, opt := range opts {
		opt(&o)
	}

	b := img.Bounds()
	out := NewCoeffImage(b.Dx(), b.Dy())
	if len(out.Pix) == 0 {
		return out, nil
	}
	if err := s.Load(); err != nil {
		return nil, err
	}

	start := time.Now()
	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()

	colors := cache.NewSharded[uint32, Coeff](o.capacity, cache.Uint32Hasher)
	wide := isWide(img.ColorModel())

	rows := max(1, out.Height/(pool.Workers()*4))
	err := pool.Range(out.Height, rows, func(y0, y1 int) error {
		for y := y0; y < y1; y++ {
			row := out.Pix[y*out.Width : (y+1)*out.Width]
			for x := range row {
				px := img.At(b.Min.X+x, b.Min.Y+y)
				var (
					c   Coeff
					err error
				)
				if wide {
					c, err = s.Fetch(decodeWide(px, o.linear))
				} else {
					n := color.NRGBAModel.Convert(px).(color.NRGBA)
					c, err = colors.GetOrCreate(cache.PackRGB8(n.R, n.G, n.B), func() (Coeff, error) {
						return s.Fetch(decode8(n, o.linear))
					})
				}
				if err != nil {
					return err
				}
				row[x] = c
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	st := colors.Stats()
	Logger().Debug("spectral: upsampled image",
		"width", out.Width,
		"height", out.Height,
		"workers", pool.Workers(),
		"colors", st.Len,
		"hit_rate", st.HitRate,
		"elapsed", time.Since(start))
	return out, nil
}

// isWide reports whether m carries more than 8 bits per channel.
func isWide(m color.Model) bool {
	switch m {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model, color.Alpha16Model:
		return true
	}
	return false
}

func decode8(c color.NRGBA, linear bool) RGB {
	if linear {
		return RGB{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
	}
	return RGB(srgb.DecodeRGB8(c.R, c.G, c.B))
}

func decodeWide(px color.Color, linear bool) RGB {
	n := color.NRGBA64Model.Convert(px).(color.NRGBA64)
	if linear {
		return RGB{float32(n.R) / 65535, float32(n.G) / 65535, float32(n.B) / 65535}
	}
	return RGB{srgb.Decode16(n.R), srgb.Decode16(n.G), srgb.Decode16(n.B)}
}
