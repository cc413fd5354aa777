// Package contentstream defines the operator vocabulary a page's content
// stream is assumed to already be decoded into. Parsing PDF bytes into this
// vocabulary is the excluded "PDF file parsing" collaborator named in the
// spec; this package only names the operators and their typed operands, in
// stream order, the way the resolver is assumed to hand them to C4/C5/C6.
package contentstream

import "github.com/ryusui-hiro/pdfcore/internal/transform"

// Op is one operator in a page's content stream. Concrete types below
// implement it; callers type-switch on the concrete type, mirroring how a
// resolved operator stream would be consumed if PDF parsing were in scope.
type Op interface {
	isOp()
}

// BeginText corresponds to the BT operator.
type BeginText struct{}

// EndText corresponds to the ET operator.
type EndText struct{}

// SetTextMatrix corresponds to the Tm operator.
type SetTextMatrix struct {
	Matrix transform.Matrix
}

// MoveTextPosition corresponds to the Td/TD operators.
type MoveTextPosition struct {
	Tx, Ty float64
	// SetLeading is true for TD, which also sets leading to -Ty.
	SetLeading bool
}

// TextNewline corresponds to the T* operator.
type TextNewline struct{}

// TextFont corresponds to the Tf operator.
type TextFont struct {
	Name string
	Size float64
}

// CharSpacing corresponds to the Tc operator.
type CharSpacing struct{ Value float64 }

// WordSpacing corresponds to the Tw operator.
type WordSpacing struct{ Value float64 }

// TextScaling corresponds to the Tz operator (a percentage, 100 = normal).
type TextScaling struct{ Value float64 }

// Leading corresponds to the TL operator.
type Leading struct{ Value float64 }

// TextRise corresponds to the Ts operator.
type TextRise struct{ Value float64 }

// TextDraw corresponds to the Tj operator (and the text-showing half of
// ' and ").
type TextDraw struct {
	Bytes []byte
}

// AdjustedItem is one element of a TJ array: either a decoded string to
// show, or a spacing adjustment in thousandths of text space.
type AdjustedItem struct {
	Text    []byte
	Spacing float64
	IsText  bool
}

// TextDrawAdjusted corresponds to the TJ operator.
type TextDrawAdjusted struct {
	Items []AdjustedItem
}

// Save corresponds to the q operator.
type Save struct{}

// Restore corresponds to the Q operator.
type Restore struct{}

// Transform corresponds to the cm operator.
type Transform struct {
	Matrix transform.Matrix
}

// XObjectDraw corresponds to the Do operator.
type XObjectDraw struct {
	Name string
}

// InlineImageDraw corresponds to a BI ... ID ... EI sequence, which the
// resolver is assumed to hand back already assembled into one operator.
type InlineImageDraw struct {
	Width            int
	Height           int
	BitsPerComponent int
	ColorSpace       string
	Decoded          []byte
	Filtered         []byte
	Filter           string
}

// MoveTo corresponds to the m operator.
type MoveTo struct{ P transform.Point }

// LineTo corresponds to the l operator.
type LineTo struct{ P transform.Point }

// CurveTo corresponds to the c operator (and the v/y variants, with the
// missing control point filled in by the resolver as the current point or
// the endpoint respectively).
type CurveTo struct{ C1, C2, P transform.Point }

// RectOp corresponds to the re operator.
type RectOp struct {
	X, Y, Width, Height float64
}

// ClosePath corresponds to the h operator.
type ClosePath struct{}

func (BeginText) isOp()        {}
func (EndText) isOp()          {}
func (SetTextMatrix) isOp()    {}
func (MoveTextPosition) isOp() {}
func (TextNewline) isOp()      {}
func (TextFont) isOp()         {}
func (CharSpacing) isOp()      {}
func (WordSpacing) isOp()      {}
func (TextScaling) isOp()      {}
func (Leading) isOp()          {}
func (TextRise) isOp()         {}
func (TextDraw) isOp()         {}
func (TextDrawAdjusted) isOp() {}
func (Save) isOp()             {}
func (Restore) isOp()          {}
func (Transform) isOp()        {}
func (XObjectDraw) isOp()      {}
func (InlineImageDraw) isOp()  {}
func (MoveTo) isOp()           {}
func (LineTo) isOp()           {}
func (CurveTo) isOp()          {}
func (RectOp) isOp()           {}
func (ClosePath) isOp()        {}
