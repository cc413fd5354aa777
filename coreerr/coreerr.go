// Package coreerr defines the error-kind hierarchy surfaced by the page
// content interpreter: one sentinel per failure class, wrapped with
// golang.org/x/xerrors so callers can classify a failure with errors.Is/
// xerrors.Is while still seeing the underlying library message.
package coreerr

import "golang.org/x/xerrors"

// Sentinel error kinds. Construct a concrete error with the matching
// constructor below rather than returning these directly, so that the
// underlying cause's message is carried in the error text. Only the
// sentinel is in the error chain; the cause itself is not wrapped.
var (
	// ErrPdfStructure marks a malformed PDF, a failed font resolution, or a
	// failed image resource lookup. Fatal for the requesting operation.
	ErrPdfStructure = xerrors.New("pdf structure error")

	// ErrImageShape marks a pixel-count mismatch while re-encoding an image
	// as PNG. Fatal for the operation.
	ErrImageShape = xerrors.New("image shape error")

	// ErrRenderConfig marks an invalid rasterisation request: bad DPI, a
	// zero-dimensioned rendered page, or a rectangle that cannot be mapped
	// onto the page. Fatal for the whole region_images call.
	ErrRenderConfig = xerrors.New("render configuration error")

	// ErrUnsupportedPng marks a PNG encode target outside the Gray/RGB/RGBA
	// 8-bit subset this module emits.
	ErrUnsupportedPng = xerrors.New("unsupported png color type")

	// ErrNativeBinding marks a failure to initialise the rasteriser's
	// process-wide rendering resources (e.g. system font discovery).
	ErrNativeBinding = xerrors.New("native rendering binding error")
)

// Structure wraps `cause` as a PdfStructure error, adding `msg` as context.
func Structure(msg string, cause error) error {
	return wrap(ErrPdfStructure, msg, cause)
}

// ImageShape creates an ImageShape error with message `msg`.
func ImageShape(msg string) error {
	return wrap(ErrImageShape, msg, nil)
}

// RenderConfig creates a RenderConfig error with message `msg`.
func RenderConfig(msg string) error {
	return wrap(ErrRenderConfig, msg, nil)
}

// UnsupportedPng creates an UnsupportedPng error with message `msg`.
func UnsupportedPng(msg string) error {
	return wrap(ErrUnsupportedPng, msg, nil)
}

// NativeBinding wraps `cause` as a NativeBinding error, adding `msg` as an
// actionable hint for the caller.
func NativeBinding(msg string, cause error) error {
	return wrap(ErrNativeBinding, msg, cause)
}

func wrap(sentinel error, msg string, cause error) error {
	if cause != nil {
		return xerrors.Errorf("%s: %s: %w", msg, cause.Error(), sentinel)
	}
	return xerrors.Errorf("%s: %w", msg, sentinel)
}
