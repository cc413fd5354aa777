package extractor

import (
	"github.com/ryusui-hiro/pdfcore/common"
	"github.com/ryusui-hiro/pdfcore/contentstream"
	"github.com/ryusui-hiro/pdfcore/internal/transform"
)

// drawXObject resolves `name` against the page resources and, if it names
// an image XObject, decodes it (C7) and emits a positioned image (C5) with
// bounds equal to the unit square under the current CTM. Any other
// resource kind, or an unknown name, is silently skipped per spec.
func (ip *interpreter) drawXObject(name string) error {
	if ip.resources == nil {
		common.Log.Debug("XObject %q referenced with no page resources; skipping", name)
		return nil
	}
	xobj, ok := ip.resources.XObjects[name]
	if !ok || xobj.Image == nil {
		common.Log.Debug("XObject %q is not a known image; skipping", name)
		return nil
	}
	decoded, err := DecodeImage(xobj.Image)
	if err != nil {
		return err
	}
	ip.result.Images = append(ip.result.Images, PositionedImage{
		Name:  name,
		BBox:  transform.UnitSquareBounds(ip.gfx.ctm),
		Image: decoded,
	})
	return nil
}

// drawInlineImage decodes an inline image and emits it under the
// per-stream monotonic name inline_<n>, n starting at 1.
func (ip *interpreter) drawInlineImage(o contentstream.InlineImageDraw) error {
	ip.inlineN++
	decoded, err := DecodeImage(toImageXObject(o))
	if err != nil {
		return err
	}
	ip.result.Images = append(ip.result.Images, PositionedImage{
		Name:  inlineName(ip.inlineN),
		BBox:  transform.UnitSquareBounds(ip.gfx.ctm),
		Image: decoded,
	})
	return nil
}
