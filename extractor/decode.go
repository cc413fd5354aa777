package extractor

import (
	"unicode/utf8"

	"github.com/ryusui-hiro/pdfcore/model"
)

// replacementRune is emitted for glyph codes that have neither a ToUnicode
// mapping nor a plausible raw code-point interpretation.
const replacementRune = '�'

// DecodedText is the result of decoding a raw PDF string operand: the
// Unicode text it represents, and the glyph code sequence used to look up
// widths for displacement calculation.
type DecodedText struct {
	Text  string
	Codes []uint16
}

// DecodeString implements C3: it never raises, regardless of how malformed
// `raw` or `font` are.
//
//   - Unknown font (font == nil): bytes are reinterpreted as Unicode via Go's
//     lossy byte->rune conversion, one code per byte.
//   - Simple font: one code per byte; text is the ToUnicode lookup, else the
//     raw code point, with U+FFFD for anything outside the Unicode range.
//   - CID font: codes are consumed two bytes at a time, big-endian; a
//     trailing odd byte is silently dropped.
func DecodeString(font *model.ResolvedFont, raw []byte) DecodedText {
	if font == nil {
		return fallbackDecode(raw)
	}
	if font.IsCID {
		return decodeCID(raw, font)
	}
	return decodeSimple(raw, font)
}

func decodeSimple(raw []byte, font *model.ResolvedFont) DecodedText {
	codes := make([]uint16, 0, len(raw))
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		code := uint16(b)
		codes = append(codes, code)
		runes = append(runes, codeToRunes(code, font)...)
	}
	return DecodedText{Text: string(runes), Codes: codes}
}

func decodeCID(raw []byte, font *model.ResolvedFont) DecodedText {
	n := len(raw) / 2
	codes := make([]uint16, 0, n)
	runes := make([]rune, 0, n)
	for i := 0; i+1 < len(raw); i += 2 {
		code := uint16(raw[i])<<8 | uint16(raw[i+1])
		codes = append(codes, code)
		runes = append(runes, codeToRunes(code, font)...)
	}
	return DecodedText{Text: string(runes), Codes: codes}
}

func codeToRunes(code uint16, font *model.ResolvedFont) []rune {
	if s, ok := font.Unicode(code); ok {
		return []rune(s)
	}
	return []rune{fallbackRune(code)}
}

func fallbackRune(code uint16) rune {
	r := rune(code)
	if !utf8.ValidRune(r) {
		return replacementRune
	}
	return r
}

func fallbackDecode(raw []byte) DecodedText {
	codes := make([]uint16, len(raw))
	for i, b := range raw {
		codes[i] = uint16(b)
	}
	// Lossy UTF-8 reinterpretation, mirroring the host string type's
	// standard lossy byte->text conversion: invalid sequences become
	// U+FFFD rather than failing.
	var text []rune
	for i := 0; i < len(raw); {
		r, size := decodeRuneLossy(raw[i:])
		text = append(text, r)
		i += size
	}
	return DecodedText{Text: string(text), Codes: codes}
}

func decodeRuneLossy(b []byte) (rune, int) {
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return replacementRune, 1
	}
	return r, size
}
