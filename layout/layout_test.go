package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryusui-hiro/pdfcore/extractor"
	"github.com/ryusui-hiro/pdfcore/internal/transform"
)

func rect(x0, y0, x1, y1 float64) transform.Rect {
	return transform.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func TestBuildTextLayoutsMergesCloseRuns(t *testing.T) {
	runs := []extractor.TextRun{
		{Text: "Hello", BBox: rect(0, 90, 40, 100)},
		{Text: "World", BBox: rect(0, 78, 40, 88)},
	}
	texts, _, _ := Build(&extractor.Result{TextRuns: runs})
	require.Len(t, texts, 1)
	assert.Equal(t, "Hello\nWorld", texts[0].Text)
	assert.Equal(t, rect(0, 78, 40, 100), texts[0].BBox)
}

func TestBuildTextLayoutsSplitsDistantRuns(t *testing.T) {
	runs := []extractor.TextRun{
		{Text: "Top", BBox: rect(0, 700, 40, 710)},
		{Text: "Bottom", BBox: rect(0, 10, 40, 20)},
	}
	texts, _, _ := Build(&extractor.Result{TextRuns: runs})
	require.Len(t, texts, 2)
	assert.Equal(t, "Top", texts[0].Text)
	assert.Equal(t, "Bottom", texts[1].Text)
}

func TestIsCaptionTextLexicon(t *testing.T) {
	cases := map[string]bool{
		"Fig. 1: a diagram":    true,
		"  (Figure 2 overview": true,
		"図1 概要":                true,
		"表2 結果":                true,
		"Table 3. Results":     true,
		"Just a paragraph":     false,
	}
	for text, want := range cases {
		assert.Equal(t, want, isCaptionText(text), "text=%q", text)
	}
}

func TestCaptionAttachmentPrefersCloserImage(t *testing.T) {
	// Scenario 5 from spec: two image layouts at y1=500 and y1=400, one
	// caption bbox (50,380,150,395) starting with "Fig. 1" must attach to
	// the y1=400 image (y_gap=5) over the y1=500 one (y_gap=105>80).
	result := &extractor.Result{
		TextRuns: []extractor.TextRun{
			{Text: "Fig. 1 caption", BBox: rect(50, 380, 150, 395)},
		},
		Images: []extractor.PositionedImage{
			{Name: "Im0", BBox: rect(50, 500, 150, 500)},
			{Name: "Im1", BBox: rect(50, 400, 150, 400)},
		},
	}
	_, images, _ := Build(result)
	require.Len(t, images, 2)

	var near, far ImageLayout
	for _, img := range images {
		if img.Name == "Im1" {
			near = img
		} else {
			far = img
		}
	}
	// y_gap to Im1 is 400-395=5; y_gap to Im0 is 500-395=105>80, excluded.
	require.Len(t, near.Captions, 1)
	assert.Equal(t, "Fig. 1 caption", near.Captions[0].Text)
	assert.Equal(t, rect(50, 380, 150, 400), near.BBox)
	assert.Empty(t, far.Captions)
}

func TestCaptionAttachmentIsInjective(t *testing.T) {
	result := &extractor.Result{
		TextRuns: []extractor.TextRun{
			{Text: "Fig. 1", BBox: rect(0, 0, 30, 10)},
		},
		Images: []extractor.PositionedImage{
			{Name: "Im0", BBox: rect(0, 11, 30, 20)},
		},
	}
	_, images, _ := Build(result)
	require.Len(t, images, 1)
	assert.Len(t, images[0].Captions, 1)
}

func TestBuildObjectLayoutsMergesNearbySegments(t *testing.T) {
	segments := []extractor.PathSegment{
		{Kind: extractor.SegmentLine, Points: []transform.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}},
		{Kind: extractor.SegmentLine, Points: []transform.Point{{X: 12, Y: 0}, {X: 20, Y: 0}}},
		{Kind: extractor.SegmentRect, Points: []transform.Point{
			{X: 200, Y: 200}, {X: 210, Y: 200}, {X: 210, Y: 210}, {X: 200, Y: 210}, {X: 200, Y: 200},
		}},
	}
	_, _, objects := Build(&extractor.Result{Paths: segments})
	require.Len(t, objects, 2)
	assert.ElementsMatch(t, []string{"line"}, objects[0].Kinds)
	assert.Equal(t, rect(0, 0, 20, 0), objects[0].BBox)
}

func TestTextLayoutsFinalSortOrder(t *testing.T) {
	runs := []extractor.TextRun{
		{Text: "Low", BBox: rect(0, 10, 40, 20)},
		{Text: "High", BBox: rect(0, 700, 40, 710)},
	}
	texts, _, _ := Build(&extractor.Result{TextRuns: runs})
	require.Len(t, texts, 2)
	assert.Equal(t, "High", texts[0].Text)
	assert.Equal(t, "Low", texts[1].Text)
}
