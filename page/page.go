// Package page implements the stable external operation surface from
// spec.md §6: page_count, text_runs, images, paths, layouts, page_content,
// region_images, and rectangle_outline. It is the seam between this
// module's internal components (C1–C9) and external callers (CLIs, a host
// binding) -- none of which are in scope here -- via the PageResolver
// interface, which stands in for the excluded PDF-file-parsing
// collaborator.
package page

import (
	"github.com/ryusui-hiro/pdfcore/contentstream"
	"github.com/ryusui-hiro/pdfcore/extractor"
	"github.com/ryusui-hiro/pdfcore/internal/transform"
	"github.com/ryusui-hiro/pdfcore/layout"
	"github.com/ryusui-hiro/pdfcore/model"
	"github.com/ryusui-hiro/pdfcore/raster"
)

// PageResolver is the narrow seam onto an opened PDF file: everything this
// package needs from the excluded file-parsing layer. A real binding
// implements this over whatever PDF library it embeds.
type PageResolver interface {
	PageCount() (int, error)
	PageOps(page int) ([]contentstream.Op, error)
	PageResources(page int) (*model.PageResources, error)
	PageSize(page int) (raster.PageSize, error)
}

// LayoutColors carries the display colour for each layout kind plus the
// custom-rectangle colour, as RGB triples in [0,1]. The zero value is not
// valid; use DefaultLayoutColors.
type LayoutColors struct {
	Text      [3]float64
	Image     [3]float64
	Object    [3]float64
	Rectangle [3]float64
}

// DefaultLayoutColors returns spec.md §6's documented default RGB triples.
func DefaultLayoutColors() LayoutColors {
	return LayoutColors{
		Text:      [3]float64{0.12, 0.45, 0.85},
		Image:     [3]float64{0.23, 0.70, 0.35},
		Object:    [3]float64{0.86, 0.33, 0.42},
		Rectangle: [3]float64{0.95, 0.40, 0.05},
	}
}

// LayoutKind tags a Layout record's origin.
type LayoutKind string

// The three layout kinds layouts() can emit.
const (
	LayoutKindText   LayoutKind = "text"
	LayoutKindImage  LayoutKind = "image"
	LayoutKindObject LayoutKind = "object"
)

// Layout is one unified record from the layouts() operation: a text,
// image, or object layout tagged with its kind and display colour.
type Layout struct {
	Kind     LayoutKind
	BBox     transform.Rect
	Color    [3]float64
	Text     *layout.TextLayout
	Image    *layout.ImageLayout
	Object   *layout.ObjectLayout
	Captions []layout.CaptionInfo
}

// Content is the aggregated page_content() record.
type Content struct {
	Page    int
	Text    []extractor.TextRun
	Images  []extractor.PositionedImage
	Objects []extractor.PathSegment
	Layouts []Layout
	Items   []interface{}
}

// RectangleRecord is the rectangle_outline() output: a canonicalised bbox
// plus its display colour.
type RectangleRecord struct {
	BBox  transform.Rect
	Color [3]float64
}

// PageCount returns the resolver's page count.
func PageCount(src PageResolver) (int, error) {
	return src.PageCount()
}

// interpret runs the shared C2–C7 pass for one page: resolve fonts, then
// interpret the operator stream.
func interpret(src PageResolver, page int) (*extractor.Result, error) {
	ops, err := src.PageOps(page)
	if err != nil {
		return nil, err
	}
	resources, err := src.PageResources(page)
	if err != nil {
		return nil, err
	}
	var fonts map[string]*model.ResolvedFont
	if resources != nil {
		fonts, err = model.ResolvePageFonts(resources.Fonts)
		if err != nil {
			return nil, err
		}
	}
	return extractor.Interpret(ops, resources, fonts)
}

// TextRuns implements text_runs().
func TextRuns(src PageResolver, page int) ([]extractor.TextRun, error) {
	result, err := interpret(src, page)
	if err != nil {
		return nil, err
	}
	return result.TextRuns, nil
}

// Images implements images().
func Images(src PageResolver, page int) ([]extractor.PositionedImage, error) {
	result, err := interpret(src, page)
	if err != nil {
		return nil, err
	}
	return result.Images, nil
}

// Paths implements paths().
func Paths(src PageResolver, page int) ([]extractor.PathSegment, error) {
	result, err := interpret(src, page)
	if err != nil {
		return nil, err
	}
	return result.Paths, nil
}

// Layouts implements layouts(), with an optional colour override.
func Layouts(src PageResolver, page int, colors *LayoutColors) ([]Layout, error) {
	result, err := interpret(src, page)
	if err != nil {
		return nil, err
	}
	c := DefaultLayoutColors()
	if colors != nil {
		c = *colors
	}
	return buildLayouts(result, c), nil
}

func buildLayouts(result *extractor.Result, colors LayoutColors) []Layout {
	texts, images, objects := layout.Build(result)

	out := make([]Layout, 0, len(texts)+len(images)+len(objects))
	for i := range texts {
		out = append(out, Layout{
			Kind:  LayoutKindText,
			BBox:  texts[i].BBox,
			Color: colors.Text,
			Text:  &texts[i],
		})
	}
	for i := range images {
		out = append(out, Layout{
			Kind:     LayoutKindImage,
			BBox:     images[i].BBox,
			Color:    colors.Image,
			Image:    &images[i],
			Captions: images[i].Captions,
		})
	}
	for i := range objects {
		out = append(out, Layout{
			Kind:     LayoutKindObject,
			BBox:     objects[i].BBox,
			Color:    colors.Object,
			Object:   &objects[i],
			Captions: objects[i].Captions,
		})
	}
	sortLayoutsFinal(out)
	return out
}

func sortLayoutsFinal(layouts []Layout) {
	for i := 1; i < len(layouts); i++ {
		for j := i; j > 0 && layoutLess(layouts[j], layouts[j-1]); j-- {
			layouts[j], layouts[j-1] = layouts[j-1], layouts[j]
		}
	}
}

func layoutLess(a, b Layout) bool {
	if a.BBox.Y1 != b.BBox.Y1 {
		return a.BBox.Y1 > b.BBox.Y1
	}
	return a.BBox.X0 < b.BBox.X0
}

// PageContent implements page_content(): the aggregated record with
// items = text ∪ images ∪ objects, in that order.
func PageContent(src PageResolver, page int) (*Content, error) {
	result, err := interpret(src, page)
	if err != nil {
		return nil, err
	}
	layouts := buildLayouts(result, DefaultLayoutColors())

	items := make([]interface{}, 0, len(result.TextRuns)+len(result.Images)+len(result.Paths))
	for _, t := range result.TextRuns {
		items = append(items, t)
	}
	for _, img := range result.Images {
		items = append(items, img)
	}
	for _, p := range result.Paths {
		items = append(items, p)
	}

	return &Content{
		Page:    page,
		Text:    result.TextRuns,
		Images:  result.Images,
		Objects: result.Paths,
		Layouts: layouts,
		Items:   items,
	}, nil
}

// RegionImages implements region_images(), defaulting DPI to 144 when the
// caller passes zero.
func RegionImages(src PageResolver, page int, rects []transform.Rect, dpi float64) ([]raster.Region, error) {
	if dpi == 0 {
		dpi = raster.DefaultDPI
	}
	result, err := interpret(src, page)
	if err != nil {
		return nil, err
	}
	size, err := src.PageSize(page)
	if err != nil {
		return nil, err
	}
	return raster.RegionImages(size, result, rects, dpi)
}

// RectangleOutline implements rectangle_outline(): canonicalise the given
// corners and attach a display colour, defaulting to the spec's custom
// rectangle colour.
func RectangleOutline(x0, y0, x1, y1 float64, color *[3]float64) RectangleRecord {
	bbox := transform.Rect{
		X0: minF(x0, x1),
		Y0: minF(y0, y1),
		X1: maxF(x0, x1),
		Y1: maxF(y0, y1),
	}
	c := DefaultLayoutColors().Rectangle
	if color != nil {
		c = *color
	}
	return RectangleRecord{BBox: bbox, Color: c}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
