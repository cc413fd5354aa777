// Package raster implements C9, the region rasteriser: it renders a page's
// extracted content at a requested DPI into a full-page bitmap, then crops
// and PNG-encodes the requested rectangles.
//
// Pixel-perfect display rendering is explicitly out of scope (the core's
// Non-goals exclude it); this renders a flat approximation -- a white
// background with the bounding boxes of the page's image, object and text
// layouts filled as coloured boxes (no image pixels or glyphs are drawn) --
// sufficient to let callers visually locate a region, grounded on the same
// CTM-driven placement unidoc-unipdf's render/renderer.go uses, simplified
// down from its cairo/gg drawing context to the standard library's
// image/draw plus github.com/disintegration/imaging for the crop step.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ryusui-hiro/pdfcore/common"
	"github.com/ryusui-hiro/pdfcore/coreerr"
	"github.com/ryusui-hiro/pdfcore/extractor"
	"github.com/ryusui-hiro/pdfcore/internal/transform"
	"github.com/ryusui-hiro/pdfcore/layout"
)

// DefaultDPI is the default resolution used when a caller does not specify
// one.
const DefaultDPI = 144.0

// fallbackGlyphHeight is the pixel height of a basicfont.Face7x13 cell,
// used as the minimum height of a text layout's fallback fill box so a
// single-line caption does not collapse to an invisible sliver at low
// scale. Grounded on the teacher's font-metrics-driven box sizing, with
// golang.org/x/image's fixed-point face metrics in place of its freetype
// glyph outlines (no glyph rendering happens here).
func fallbackGlyphHeight(face font.Face, scale float64) int {
	m := face.Metrics()
	h := fixed.I(0)
	h += m.Ascent + m.Descent
	px := int(math.Ceil(float64(h.Ceil()) * scale))
	if px < 1 {
		return 1
	}
	return px
}

var fallbackFace = basicfont.Face7x13

// Region is one emitted record from RegionImages.
type Region struct {
	Requested transform.Rect
	Clamped   transform.Rect
	PixelBox  image.Rectangle
	PNG       []byte
	DPI       float64
	Scale     float64
}

// PageSize is the media box width/height, in PDF user-space points.
type PageSize struct {
	Width  float64
	Height float64
}

// RenderPage renders the full page at `scale` (pixels per point) as a flat
// white-background composite of its images, path segments, and text
// layouts, per step 2 of §4.9.
func RenderPage(size PageSize, result *extractor.Result, scale float64) *image.RGBA {
	w := int(math.Ceil(size.Width * scale))
	h := int(math.Ceil(size.Height * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	toPixel := func(r transform.Rect) image.Rectangle {
		return image.Rect(
			int(math.Floor(r.X0*scale)),
			int(math.Floor((size.Height-r.Y1)*scale)),
			int(math.Ceil(r.X1*scale)),
			int(math.Ceil((size.Height-r.Y0)*scale)),
		)
	}

	textLayouts, imageLayouts, objectLayouts := layout.Build(result)

	for _, l := range objectLayouts {
		fillRect(img, toPixel(l.BBox), color.RGBA{R: 219, G: 84, B: 107, A: 255})
	}
	minTextHeight := fallbackGlyphHeight(fallbackFace, scale)
	for _, l := range textLayouts {
		box := toPixel(l.BBox)
		if box.Dy() < minTextHeight {
			box.Max.Y = box.Min.Y + minTextHeight
		}
		fillRect(img, box, color.RGBA{R: 31, G: 115, B: 217, A: 60})
	}
	for _, l := range imageLayouts {
		fillRect(img, toPixel(l.BBox), color.RGBA{R: 59, G: 179, B: 89, A: 160})
	}
	return img
}

func fillRect(dst *image.RGBA, box image.Rectangle, c color.RGBA) {
	box = box.Intersect(dst.Bounds())
	if box.Empty() {
		return
	}
	draw.Draw(dst, box, &image.Uniform{C: c}, image.Point{}, draw.Over)
}

// RegionImages implements §4.9 in full: scale validation, full-page
// render, then per-rectangle canonicalise/clamp/pixel-map/crop/encode.
func RegionImages(size PageSize, result *extractor.Result, rects []transform.Rect, dpi float64) ([]Region, error) {
	if dpi <= 0 || math.IsNaN(dpi) || math.IsInf(dpi, 0) {
		return nil, coreerr.RenderConfig("dpi must be a positive finite value")
	}
	scale := dpi / 72
	page := RenderPage(size, result, scale)

	out := make([]Region, 0, len(rects))
	for i, raw := range rects {
		region, err := cropRegion(page, size, raw, dpi, scale, i)
		if err != nil {
			return nil, err
		}
		out = append(out, region)
	}
	return out, nil
}

func cropRegion(page *image.RGBA, size PageSize, raw transform.Rect, dpi, scale float64, index int) (Region, error) {
	canon := transform.Rect{
		X0: math.Min(raw.X0, raw.X1),
		Y0: math.Min(raw.Y0, raw.Y1),
		X1: math.Max(raw.X0, raw.X1),
		Y1: math.Max(raw.Y0, raw.Y1),
	}
	clamped := transform.Rect{
		X0: clampF(canon.X0, 0, size.Width),
		Y0: clampF(canon.Y0, 0, size.Height),
		X1: clampF(canon.X1, 0, size.Width),
		Y1: clampF(canon.Y1, 0, size.Height),
	}
	if clamped.X1 <= clamped.X0 || clamped.Y1 <= clamped.Y0 {
		return Region{}, coreerr.RenderConfig(indexedMessage("rectangle at index %d does not overlap the page bounds", index))
	}

	bounds := page.Bounds()
	left := clampI(int(math.Floor(clamped.X0*scale)), bounds.Min.X, bounds.Max.X)
	right := clampI(int(math.Ceil(clamped.X1*scale)), bounds.Min.X, bounds.Max.X)
	top := clampI(int(math.Floor((size.Height-clamped.Y1)*scale)), bounds.Min.Y, bounds.Max.Y)
	bottom := clampI(int(math.Ceil((size.Height-clamped.Y0)*scale)), bounds.Min.Y, bounds.Max.Y)

	if right == left {
		right = clampI(right+1, bounds.Min.X, bounds.Max.X)
	}
	if bottom == top {
		bottom = clampI(bottom+1, bounds.Min.Y, bounds.Max.Y)
	}
	if right <= left || bottom <= top {
		return Region{}, coreerr.RenderConfig(indexedMessage("rectangle at index %d produced an empty region after scaling", index))
	}

	pixelBox := image.Rect(left, top, right, bottom)
	cropped := imaging.Crop(page, pixelBox)
	payload, err := encodeRGBA(cropped)
	if err != nil {
		return Region{}, err
	}

	common.Log.Debug("rasterised region %d: page-space %v -> pixels %v", index, clamped, pixelBox)

	return Region{
		Requested: raw,
		Clamped:   clamped,
		PixelBox:  pixelBox,
		PNG:       payload,
		DPI:       dpi,
		Scale:     scale,
	}, nil
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func indexedMessage(format string, index int) string {
	return fmt.Sprintf(format, index)
}

func encodeRGBA(img image.Image) ([]byte, error) {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		converted := image.NewRGBA(img.Bounds())
		draw.Draw(converted, converted.Bounds(), img, img.Bounds().Min, draw.Src)
		rgba = converted
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, coreerr.Structure("encoding region PNG", err)
	}
	return buf.Bytes(), nil
}
