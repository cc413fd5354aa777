package extractor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/ryusui-hiro/pdfcore/contentstream"
	"github.com/ryusui-hiro/pdfcore/coreerr"
	"github.com/ryusui-hiro/pdfcore/model"
)

// inlineName formats the per-stream inline image name, numbered from 1.
func inlineName(n int) string {
	return fmt.Sprintf("inline_%d", n)
}

// toImageXObject projects an inline image operator onto the shared
// ImageXObject shape C7 decodes.
func toImageXObject(o contentstream.InlineImageDraw) *model.ImageXObject {
	return &model.ImageXObject{
		Width:            o.Width,
		Height:           o.Height,
		BitsPerComponent: o.BitsPerComponent,
		ColorSpace:       o.ColorSpace,
		Decoded:          o.Decoded,
		Filtered:         o.Filtered,
		Filter:           o.Filter,
	}
}

// ImageFormat tags a DecodedImage's payload encoding.
type ImageFormat string

// Formats a decoded image can carry, per spec.
const (
	FormatPNG   ImageFormat = "png"
	FormatJPEG  ImageFormat = "jpeg"
	FormatJPX   ImageFormat = "jpx"
	FormatJBIG2 ImageFormat = "jbig2"
	FormatFax   ImageFormat = "fax"
	FormatFlate ImageFormat = "flate"
	FormatRaw   ImageFormat = "raw"
)

// DecodedImage is C7's output: dimensions plus a payload tagged by format.
type DecodedImage struct {
	Width   int
	Height  int
	Format  ImageFormat
	Payload []byte
}

// filterFormat maps a PDF stream filter name to the passthrough format tag.
func filterFormat(filter string) ImageFormat {
	switch filter {
	case "DCTDecode":
		return FormatJPEG
	case "JPXDecode":
		return FormatJPX
	case "JBIG2Decode":
		return FormatJBIG2
	case "CCITTFaxDecode":
		return FormatFax
	case "FlateDecode":
		return FormatFlate
	default:
		return FormatRaw
	}
}

// DecodeImage implements C7: DeviceRGB/DeviceGray at 8 bits per component
// are fully decoded and re-encoded as PNG; everything else is passed
// through as the raw filtered stream, tagged by its outermost filter.
func DecodeImage(img *model.ImageXObject) (DecodedImage, error) {
	bpc := img.EffectiveBitsPerComponent()

	if bpc == 8 && (img.ColorSpace == "DeviceRGB" || img.ColorSpace == "") {
		expected := img.Width * img.Height * 3
		if len(img.Decoded) != expected {
			return DecodedImage{}, coreerr.ImageShape("unexpected RGB image size")
		}
		payload, err := encodeRGBPNG(img.Decoded, img.Width, img.Height)
		if err != nil {
			return DecodedImage{}, err
		}
		return DecodedImage{Width: img.Width, Height: img.Height, Format: FormatPNG, Payload: payload}, nil
	}

	if bpc == 8 && img.ColorSpace == "DeviceGray" {
		expected := img.Width * img.Height
		if len(img.Decoded) != expected {
			return DecodedImage{}, coreerr.ImageShape("unexpected grayscale image size")
		}
		payload, err := encodeGrayPNG(img.Decoded, img.Width, img.Height)
		if err != nil {
			return DecodedImage{}, err
		}
		return DecodedImage{Width: img.Width, Height: img.Height, Format: FormatPNG, Payload: payload}, nil
	}

	return DecodedImage{
		Width:   img.Width,
		Height:  img.Height,
		Format:  filterFormat(img.Filter),
		Payload: img.Filtered,
	}, nil
}

// encodeRGBPNG re-encodes tightly packed 8-bit RGB samples as a PNG.
func encodeRGBPNG(samples []byte, w, h int) ([]byte, error) {
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			rgba.SetRGBA(x, y, color.RGBA{R: samples[i], G: samples[i+1], B: samples[i+2], A: 255})
		}
	}
	return EncodePNG(rgba)
}

// encodeGrayPNG re-encodes tightly packed 8-bit gray samples as a PNG.
func encodeGrayPNG(samples []byte, w, h int) ([]byte, error) {
	gray := image.NewGray(image.Rect(0, 0, w, h))
	copy(gray.Pix, samples)
	return EncodePNG(gray)
}

// EncodePNG is the shared PNG encode step used here and by the raster
// package (C9): it accepts only Gray/RGB/RGBA at 8-bit depth, per spec.
func EncodePNG(img image.Image) ([]byte, error) {
	switch img.(type) {
	case *image.Gray, *image.RGBA, *image.NRGBA:
	default:
		return nil, coreerr.UnsupportedPng("unsupported PNG color type")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, coreerr.Structure("encoding PNG", err)
	}
	return buf.Bytes(), nil
}
