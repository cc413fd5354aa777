// Package model holds the page-resource projections the content
// interpreter consumes: resolved fonts (C2), image/inline-image XObjects
// (input to C7), and the page resource table the resolver (an external
// collaborator, per spec) is assumed to hand back for a page.
package model

import (
	"github.com/ryusui-hiro/pdfcore/coreerr"
)

// defaultGlyphWidth is used whenever a font has no widths table, or a code
// falls outside it: 1000 units of 1/1000 em, i.e. a full em advance.
const defaultGlyphWidth = 1000.0

// defaultAscent and defaultDescent are the fallback metrics (1/1000 em)
// used when a font has no descriptor.
const (
	defaultAscent  = 800.0
	defaultDescent = -200.0
)

// FontResource is the raw per-font data the page resolver exposes for a
// name in the page's /Font resource dictionary. It is the seam between
// "PDF file parsing" (excluded from this module) and the font resolver
// (C2), which projects it down to a ResolvedFont.
type FontResource interface {
	// Widths returns the glyph code -> width (1/1000 em) table, if any.
	Widths() (map[uint16]float64, bool)
	// ToUnicode returns the glyph code -> Unicode string table, if any.
	ToUnicode() (map[uint16]string, bool)
	// IsCID reports whether the font uses 2-byte big-endian codes.
	IsCID() bool
	// Descriptor returns the font descriptor's ascent/descent, in 1/1000
	// em units, if the descriptor is present.
	Descriptor() (ascent, descent float64, ok bool)
	// Descendant returns the first descendant font for a Type0 composite
	// font, which metrics delegate to. Simple fonts return (nil, false).
	Descendant() (FontResource, bool)
}

// ResolvedFont is the materialised per-font decoding table C2 produces:
// everything C3 (string decoding) and C4 (text layout) need, with every
// PDF-structure fallback already applied.
type ResolvedFont struct {
	Widths    map[uint16]float64
	ToUnicode map[uint16]string
	IsCID     bool
	Ascent    float64
	Descent   float64
}

// Width returns the glyph advance for `code`, in 1/1000 em units, falling
// back to the default em-width when the font has no widths table or the
// code is missing from it.
func (f *ResolvedFont) Width(code uint16) float64 {
	if f == nil || f.Widths == nil {
		return defaultGlyphWidth
	}
	if w, ok := f.Widths[code]; ok {
		return w
	}
	return defaultGlyphWidth
}

// Unicode returns the ToUnicode mapping for `code`, if any.
func (f *ResolvedFont) Unicode(code uint16) (string, bool) {
	if f == nil || f.ToUnicode == nil {
		return "", false
	}
	s, ok := f.ToUnicode[code]
	return s, ok
}

// ResolveFont materialises a ResolvedFont from the raw resource `r`.
// Type0 (composite) fonts delegate their widths/ToUnicode/ascent/descent
// to their first descendant, per spec; the composite's own IsCID flag is
// always honoured directly. Missing ToUnicode is not an error -- decoding
// falls back to raw code-point reinterpretation; missing widths and
// missing descriptors fall back to the documented defaults. The only
// failure this returns is a structurally unresolvable descendant chain,
// which is fatal for the page per spec's font-resolution failure policy.
func ResolveFont(r FontResource) (*ResolvedFont, error) {
	metrics := r
	if d, ok := r.Descendant(); ok {
		if d == nil {
			return nil, coreerr.Structure("composite font descendant is nil", nil)
		}
		metrics = d
	}

	resolved := &ResolvedFont{IsCID: r.IsCID()}

	if w, ok := metrics.Widths(); ok {
		resolved.Widths = w
	}
	if tu, ok := metrics.ToUnicode(); ok {
		resolved.ToUnicode = tu
	}
	if ascent, descent, ok := metrics.Descriptor(); ok {
		resolved.Ascent = ascent
		resolved.Descent = descent
	} else {
		resolved.Ascent = defaultAscent
		resolved.Descent = defaultDescent
	}

	return resolved, nil
}

// ResolvePageFonts resolves every font in a page's resource dictionary.
// Failure to resolve a single font is fatal for the page: the caller
// cannot rely on glyph widths for unresolved fonts.
func ResolvePageFonts(fonts map[string]FontResource) (map[string]*ResolvedFont, error) {
	resolved := make(map[string]*ResolvedFont, len(fonts))
	for name, res := range fonts {
		rf, err := ResolveFont(res)
		if err != nil {
			return nil, coreerr.Structure("resolving font "+name, err)
		}
		resolved[name] = rf
	}
	return resolved, nil
}
