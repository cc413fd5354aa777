package raster

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryusui-hiro/pdfcore/extractor"
	"github.com/ryusui-hiro/pdfcore/internal/transform"
)

func TestRegionImagesRejectsInvalidDPI(t *testing.T) {
	size := PageSize{Width: 612, Height: 792}
	_, err := RegionImages(size, &extractor.Result{}, nil, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dpi must be a positive finite value")

	_, err = RegionImages(size, &extractor.Result{}, nil, math.NaN())
	require.Error(t, err)
}

func TestRegionImagesYFlipScenario(t *testing.T) {
	// Scenario 6 from spec: page 612x792, DPI 144 -> scale 2, bitmap
	// 1224x1584. Rect (0,0,612,396) maps to pixel box (0,792,1224,1584).
	size := PageSize{Width: 612, Height: 792}
	rects := []transform.Rect{{X0: 0, Y0: 0, X1: 612, Y1: 396}}

	regions, err := RegionImages(size, &extractor.Result{}, rects, 144)
	require.NoError(t, err)
	require.Len(t, regions, 1)

	r := regions[0]
	assert.Equal(t, 144.0, r.DPI)
	assert.Equal(t, 2.0, r.Scale)
	assert.Equal(t, 1224, r.PixelBox.Dx())
	assert.Equal(t, 792, r.PixelBox.Dy())

	img, err := png.Decode(bytes.NewReader(r.PNG))
	require.NoError(t, err)
	assert.Equal(t, 1224, img.Bounds().Dx())
	assert.Equal(t, 792, img.Bounds().Dy())
}

func TestRegionImagesRejectsOutOfBoundsRectangle(t *testing.T) {
	size := PageSize{Width: 612, Height: 792}
	rects := []transform.Rect{{X0: 700, Y0: 700, X1: 800, Y1: 800}}

	_, err := RegionImages(size, &extractor.Result{}, rects, 144)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rectangle at index 0 does not overlap the page bounds")
}

func TestRegionImagesRejectsZeroAreaRectangle(t *testing.T) {
	// A zero-width rectangle inside the page still has zero area after
	// clamping, so it is rejected rather than grown to one pixel.
	size := PageSize{Width: 100, Height: 100}
	rects := []transform.Rect{{X0: 50, Y0: 50, X1: 50, Y1: 60}}

	regions, err := RegionImages(size, &extractor.Result{}, rects, 72)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rectangle at index 0 does not overlap the page bounds")
	assert.Empty(t, regions)
}

func TestRegionImagesRecordCountMatchesInput(t *testing.T) {
	size := PageSize{Width: 200, Height: 200}
	rects := []transform.Rect{
		{X0: 0, Y0: 0, X1: 50, Y1: 50},
		{X0: 60, Y0: 60, X1: 120, Y1: 120},
	}
	regions, err := RegionImages(size, &extractor.Result{}, rects, DefaultDPI)
	require.NoError(t, err)
	assert.Len(t, regions, len(rects))
}
