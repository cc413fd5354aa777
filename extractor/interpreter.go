// Package extractor implements the string decoder (C3), text state machine
// (C4), graphics state machine (C5), path collector (C6) and image decoder
// (C7): the single pass over a page's content stream that produces
// positioned text runs, positioned images, and path segments.
package extractor

import (
	"github.com/ryusui-hiro/pdfcore/common"
	"github.com/ryusui-hiro/pdfcore/contentstream"
	"github.com/ryusui-hiro/pdfcore/internal/transform"
	"github.com/ryusui-hiro/pdfcore/model"
)

// defaultAscent1000 and defaultDescent1000 back an unknown or
// descriptor-less font, in 1/1000 em units.
const (
	defaultAscent1000  = 800.0
	defaultDescent1000 = -200.0
)

// TextRun is C4's emitted output: decoded text, baseline anchor, and
// bounding box, all in coordinates produced by the text matrix alone. The
// CTM is not applied to text runs: BeginText resets the text matrix to
// identity and cm only changes the graphics state's CTM.
type TextRun struct {
	Text      string
	BaselineX float64
	BaselineY float64
	BBox      transform.Rect
}

// PositionedImage is C5's emitted output for an XObject or inline image
// draw: a resource-scoped name, the unit-square bounds under the current
// CTM, and the decoded image.
type PositionedImage struct {
	Name  string
	BBox  transform.Rect
	Image DecodedImage
}

// Result aggregates everything a single pass over a content stream
// produces, in stream order.
type Result struct {
	TextRuns []TextRun
	Images   []PositionedImage
	Paths    []PathSegment
}

// Interpret runs C4, C5, C6 and C7 as a single pass over `ops`, the way
// spec's Design Notes permit: one materialised operator list, scanned
// once, each component's order contract preserved independently.
func Interpret(ops []contentstream.Op, resources *model.PageResources, fonts map[string]*model.ResolvedFont) (*Result, error) {
	ip := &interpreter{
		text:      newTextState(),
		gfx:       newGraphicsState(),
		fonts:     fonts,
		resources: resources,
	}
	for _, op := range ops {
		if err := ip.apply(op); err != nil {
			return nil, err
		}
	}
	ip.result.Paths = ip.path.segments
	return &ip.result, nil
}

type interpreter struct {
	text      textState
	gfx       graphicsState
	path      pathCollector
	fonts     map[string]*model.ResolvedFont
	resources *model.PageResources
	inlineN   int
	result    Result
}

func (ip *interpreter) apply(op contentstream.Op) error {
	switch o := op.(type) {
	case contentstream.BeginText:
		ip.text.beginText()
	case contentstream.EndText:
		// No-op: text state persists intentionally. The matrices are only
		// reset at the next BeginText, per spec's frozen-behaviour note.
	case contentstream.SetTextMatrix:
		ip.text.setTextMatrix(o.Matrix)
	case contentstream.MoveTextPosition:
		if o.SetLeading {
			ip.text.leading = -o.Ty
		}
		ip.text.moveTextPosition(o.Tx, o.Ty)
	case contentstream.TextNewline:
		ip.text.newline()
	case contentstream.TextFont:
		ip.text.fontName = o.Name
		ip.text.hasFont = true
		ip.text.fontSize = o.Size
	case contentstream.CharSpacing:
		ip.text.charSpacing = o.Value
	case contentstream.WordSpacing:
		ip.text.wordSpacing = o.Value
	case contentstream.TextScaling:
		ip.text.horizontalScale = o.Value
	case contentstream.Leading:
		ip.text.leading = o.Value
	case contentstream.TextRise:
		ip.text.rise = o.Value
	case contentstream.TextDraw:
		ip.showText(o.Bytes)
	case contentstream.TextDrawAdjusted:
		for _, item := range o.Items {
			if item.IsText {
				ip.showText(item.Text)
				continue
			}
			adjust := -item.Spacing / 1000 * ip.text.fontSize * (ip.text.horizontalScale / 100)
			if adjust != 0 {
				ip.text.translateText(adjust)
			}
		}
	case contentstream.Save:
		ip.gfx.save()
	case contentstream.Restore:
		if len(ip.gfx.stack) == 0 {
			common.Log.Debug("Restore called with an empty graphics state stack; resetting to identity")
		}
		ip.gfx.restore()
	case contentstream.Transform:
		ip.gfx.concat(o.Matrix)
	case contentstream.XObjectDraw:
		return ip.drawXObject(o.Name)
	case contentstream.InlineImageDraw:
		return ip.drawInlineImage(o)
	case contentstream.MoveTo:
		ip.path.moveTo(o.P)
	case contentstream.LineTo:
		ip.path.lineTo(o.P)
	case contentstream.CurveTo:
		ip.path.curveTo(o.C1, o.C2, o.P)
	case contentstream.RectOp:
		ip.path.rect(o.X, o.Y, o.Width, o.Height)
	case contentstream.ClosePath:
		ip.path.close()
	}
	return nil
}

func (ip *interpreter) currentFont() *model.ResolvedFont {
	if !ip.text.hasFont {
		return nil
	}
	return ip.fonts[ip.text.fontName]
}

func (ip *interpreter) showText(raw []byte) {
	font := ip.currentFont()
	decoded := DecodeString(font, raw)

	baseline := transform.Apply(ip.text.textMatrix, transform.Point{X: 0, Y: ip.text.rise})
	displacement := computeDisplacement(font, decoded.Codes, &ip.text)
	ascent, descent := ascentDescent(font)
	bbox := runBounds(ip.text.textMatrix, ip.text.rise, ip.text.fontSize, displacement, ascent, descent)

	ip.result.TextRuns = append(ip.result.TextRuns, TextRun{
		Text:      decoded.Text,
		BaselineX: baseline.X,
		BaselineY: baseline.Y,
		BBox:      bbox,
	})

	if displacement != 0 {
		ip.text.translateText(displacement)
	}
}

// computeDisplacement implements the horizontal displacement formula from
// spec §4.4, exactly.
func computeDisplacement(font *model.ResolvedFont, codes []uint16, state *textState) float64 {
	var total float64
	for _, code := range codes {
		advance := font.Width(code) / 1000 * state.fontSize
		advance += state.charSpacing
		if code == 0x20 {
			advance += state.wordSpacing
		}
		total += advance
	}
	return total * (state.horizontalScale / 100)
}

func ascentDescent(font *model.ResolvedFont) (ascent, descent float64) {
	if font == nil {
		return defaultAscent1000, defaultDescent1000
	}
	return font.Ascent, font.Descent
}

// runBounds computes the six sample points from spec §4.4 -- baseline
// start/end and the four ascent/descent extents -- transforms each by
// `tm`, and returns their bounds.
func runBounds(tm transform.Matrix, rise, fontSize, displacement, ascent, descent float64) transform.Rect {
	ascentY := ascent/1000*fontSize + rise
	descentY := descent/1000*fontSize + rise
	points := []transform.Point{
		transform.Apply(tm, transform.Point{X: 0, Y: rise}),
		transform.Apply(tm, transform.Point{X: displacement, Y: rise}),
		transform.Apply(tm, transform.Point{X: 0, Y: ascentY}),
		transform.Apply(tm, transform.Point{X: displacement, Y: ascentY}),
		transform.Apply(tm, transform.Point{X: 0, Y: descentY}),
		transform.Apply(tm, transform.Point{X: displacement, Y: descentY}),
	}
	return transform.BoundsOf(points)
}
