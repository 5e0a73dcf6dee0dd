// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package watermark protects preview-only raster exports by tiling a
// translucent diagonal label across them. Each label is drawn twice, a dark
// offset shadow under a light main copy, so it stays legible on both light
// and dark artwork. Output is always PNG.
package watermark

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrInvalidImage is returned when the input cannot be decoded or has no
// usable dimensions.
var ErrInvalidImage = errors.New("invalid image")

// ErrTooLarge is returned when the input's declared dimensions exceed
// MaxPixels or MaxSide. It is detected from the header, before decoding.
var ErrTooLarge = errors.New("image too large")

// Dimension caps. Overlay memory grows with the square of the diagonal.
const (
	MaxPixels = 16_000_000
	MaxSide   = 5000
)

// DefaultText is the label stamped when none is configured.
const DefaultText = "AIPRINTLY PREVIEW"

// ContentType is the MIME type of every stamped output.
const ContentType = "image/png"

const (
	minFontSize   = 30
	maxFontSize   = 80
	opacity       = 0.3
	shadowOffset  = 2
	diagonalAngle = 45 // counter-clockwise, i.e. text runs bottom-left to top-right
)

var (
	shadowColor = color.NRGBA{R: 0, G: 0, B: 0, A: uint8(math.Round(opacity * 255))}
	mainColor   = color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(opacity * 255))}
)

// Stamper overlays a fixed label on images.
type Stamper struct {
	text string
	font *opentype.Font
}

// New creates a Stamper for text. An empty text selects DefaultText.
func New(text string) (*Stamper, error) {
	if text == "" {
		text = DefaultText
	}
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("watermark: parse font: %w", err)
	}
	return &Stamper{text: text, font: f}, nil
}

// Text returns the label this Stamper draws.
func (s *Stamper) Text() string {
	return s.text
}

// Stamp decodes src, overlays the watermark and returns PNG bytes. src is
// not modified. Undecodable input or input without dimensions fails with
// ErrInvalidImage and no output; input declaring more than MaxPixels or
// MaxSide fails with ErrTooLarge without being decoded.
func (s *Stamper) Stamp(src []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: read dimensions: %v", ErrInvalidImage, err)
	}
	if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidImage, err)
	}

	out, err := s.StampImage(img)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("watermark: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// StampImage overlays the watermark on img and returns a new image.
func (s *Stamper) StampImage(img image.Image) (*image.NRGBA, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	layout := NewLayout(width, height)

	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    layout.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("watermark: font face: %w", err)
	}
	defer face.Close()

	overlay := s.renderOverlay(layout, face)

	// Rotate the horizontal rows onto the diagonal, then take the centre so
	// the overlay matches the source size.
	rotated := imaging.Rotate(overlay, diagonalAngle, color.Transparent)
	tile := imaging.CropCenter(rotated, width, height)

	return imaging.Overlay(img, tile, image.Pt(0, 0), 1.0), nil
}

// checkDimensions rejects empty images and images over the size caps.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, width, height)
	}
	if width > MaxSide || height > MaxSide || int64(width)*int64(height) > MaxPixels {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels or %d per side", ErrTooLarge, width, height, MaxPixels, MaxSide)
	}
	return nil
}

// renderOverlay draws the label rows on a transparent square whose side is
// the source diagonal, so every row reaches the corners after rotation.
func (s *Stamper) renderOverlay(l Layout, face font.Face) *image.NRGBA {
	side := int(math.Ceil(l.Diagonal))
	overlay := imaging.New(side, side, color.Transparent)

	textWidth := font.MeasureString(face, s.text).Ceil()
	ascent := face.Metrics().Ascent.Ceil()

	centre := float64(side) / 2
	x := int(centre) - textWidth/2
	first := centre - float64(l.Repetitions-1)*l.Spacing/2

	for i := 0; i < l.Repetitions; i++ {
		baseline := int(math.Round(first+float64(i)*l.Spacing)) + ascent/2
		s.drawText(overlay, face, shadowColor, x+shadowOffset, baseline+shadowOffset)
		s.drawText(overlay, face, mainColor, x, baseline)
	}
	return overlay
}

func (s *Stamper) drawText(dst *image.NRGBA, face font.Face, c color.Color, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s.text)
}

// Layout holds the sizing derived from the source dimensions.
type Layout struct {
	FontSize    float64
	Spacing     float64
	Diagonal    float64
	Repetitions int
}

// NewLayout computes font size, row spacing and repetition count for a
// width x height image.
func NewLayout(width, height int) Layout {
	w, h := float64(width), float64(height)
	size := math.Min(w, h) / 15
	size = math.Max(minFontSize, math.Min(maxFontSize, size))

	diagonal := math.Sqrt(w*w + h*h)
	spacing := diagonal / 4

	return Layout{
		FontSize:    size,
		Spacing:     spacing,
		Diagonal:    diagonal,
		Repetitions: int(math.Ceil(diagonal/spacing)) + 2,
	}
}
