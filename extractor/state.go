package extractor

import "github.com/ryusui-hiro/pdfcore/internal/transform"

// textState is the mutable text state (C4). Its two matrices are reset on
// every BeginText; the scalars persist.
type textState struct {
	fontName string
	hasFont  bool
	fontSize float64

	charSpacing     float64
	wordSpacing     float64
	horizontalScale float64
	leading         float64
	rise            float64
	textMatrix      transform.Matrix
	textLineMatrix  transform.Matrix
}

// newTextState returns the state a content stream starts with: no current
// font, default 100% horizontal scale, identity matrices.
func newTextState() textState {
	return textState{
		fontSize:        12,
		horizontalScale: 100,
		textMatrix:      transform.Identity(),
		textLineMatrix:  transform.Identity(),
	}
}

// beginText resets both text matrices to identity (invariant 1). Scalars
// (font, spacing, leading, rise) persist across BT/ET per spec.
func (s *textState) beginText() {
	s.textMatrix = transform.Identity()
	s.textLineMatrix = transform.Identity()
}

// setTextMatrix assigns both matrices to `m` (invariant 2).
func (s *textState) setTextMatrix(m transform.Matrix) {
	s.textMatrix = m
	s.textLineMatrix = m
}

// moveTextPosition advances the text-line matrix by a translation and
// copies it back into the text matrix.
func (s *textState) moveTextPosition(tx, ty float64) {
	s.textLineMatrix = transform.Compose(s.textLineMatrix, transform.Translation(tx, ty))
	s.textMatrix = s.textLineMatrix
}

// newline is a move by (0, -leading) (invariant 3).
func (s *textState) newline() {
	s.moveTextPosition(0, -s.leading)
}

// translateText advances only the text matrix, by `tx` in text space --
// used after showing text, and for TJ spacing adjustments.
func (s *textState) translateText(tx float64) {
	s.textMatrix = transform.Compose(s.textMatrix, transform.Translation(tx, 0))
}

// graphicsState tracks just the CTM plus its save/restore stack (C5); all
// other graphics attributes are out of scope.
type graphicsState struct {
	ctm   transform.Matrix
	stack []transform.Matrix
}

func newGraphicsState() graphicsState {
	return graphicsState{ctm: transform.Identity()}
}

func (g *graphicsState) save() {
	g.stack = append(g.stack, g.ctm)
}

// restore pops the CTM stack. An empty stack resets to identity rather than
// crashing (invariant 4).
func (g *graphicsState) restore() {
	if len(g.stack) == 0 {
		g.ctm = transform.Identity()
		return
	}
	g.ctm = g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
}

func (g *graphicsState) concat(m transform.Matrix) {
	g.ctm = transform.Compose(g.ctm, m)
}
