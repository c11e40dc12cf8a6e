// Package imagecodec turns embedded image payloads into RGB rasters.
package imagecodec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

// MaxPixels caps the declared width*height accepted before pixel data is allocated
const MaxPixels = 40_000_000

var (
	// ErrEmptyPayload is returned when there are no bytes left to decode
	ErrEmptyPayload = errors.New("empty image payload")
	// ErrImageTooLarge is returned when the header declares more than MaxPixels
	ErrImageTooLarge = errors.New("image dimensions too large")
)

// Raster is a decoded image normalized to opaque 3-channel RGB
type Raster struct {
	img    *image.RGBA
	Format string
}

// Decode strips an optional "<metadata>," prefix, base64-decodes the rest and
// decodes the resulting bytes. Every failure is reported as domain.ErrInvalidImage.
func Decode(payload string) (*Raster, error) {
	data, err := DecodePayload(payload)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("decode image header: %w", err))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height))
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("decode image: %w", err))
	}

	return &Raster{img: toRGB(img), Format: format}, nil
}

// DecodePayload returns the raw image bytes carried by payload
func DecodePayload(payload string) ([]byte, error) {
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrEmptyPayload
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	return data, nil
}

// FromImage wraps an already decoded image, applying the same normalization as Decode
func FromImage(img image.Image) *Raster {
	return &Raster{img: toRGB(img)}
}

// toRGB copies img into an opaque RGBA buffer. Alpha is discarded rather than
// composited, so the colour channels keep their straight (non-premultiplied) values.
func toRGB(src image.Image) *image.RGBA {
	b := src.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if s, ok := src.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			off := s.PixOffset(b.Min.X, b.Min.Y+y)
			copy(nrgba.Pix[y*nrgba.Stride:(y+1)*nrgba.Stride], s.Pix[off:off+b.Dx()*4])
		}
	} else {
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}

	for i := 3; i < len(nrgba.Pix); i += 4 {
		nrgba.Pix[i] = 0xff
	}

	return &image.RGBA{
		Pix:    nrgba.Pix,
		Stride: nrgba.Stride,
		Rect:   nrgba.Rect,
	}
}

// Width in pixels
func (r *Raster) Width() int {
	return r.img.Rect.Dx()
}

// Height in pixels
func (r *Raster) Height() int {
	return r.img.Rect.Dy()
}

// Image exposes the raster through the standard image interface
func (r *Raster) Image() image.Image {
	return r.img
}

// At returns the colour of the pixel at (x, y)
func (r *Raster) At(x, y int) color.RGBA {
	return r.img.RGBAAt(x, y)
}

// RGB returns the pixels packed as R, G, B bytes, row by row
func (r *Raster) RGB() []byte {
	w, h := r.Width(), r.Height()
	out := make([]byte, 0, w*h*3)

	for y := 0; y < h; y++ {
		row := r.img.Pix[y*r.img.Stride : y*r.img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			out = append(out, row[x], row[x+1], row[x+2])
		}
	}

	return out
}

// EncodeJPEG re-encodes the raster for extractors that take an encoded upload
func (r *Raster) EncodeJPEG(quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, r.img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
