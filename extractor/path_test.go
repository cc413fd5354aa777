package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryusui-hiro/pdfcore/internal/transform"
)

func TestLineToEmitsSegmentFromCurrentPoint(t *testing.T) {
	var c pathCollector
	c.moveTo(transform.Point{X: 0, Y: 0})
	c.lineTo(transform.Point{X: 10, Y: 0})
	require.Len(t, c.segments, 1)
	assert.Equal(t, SegmentLine, c.segments[0].Kind)
	assert.Equal(t, []transform.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, c.segments[0].Points)
}

func TestLineToWithoutMoveToIsIgnored(t *testing.T) {
	var c pathCollector
	c.lineTo(transform.Point{X: 10, Y: 0})
	assert.Empty(t, c.segments)
}

func TestCurveToEmitsFourControlPoints(t *testing.T) {
	var c pathCollector
	c.moveTo(transform.Point{X: 0, Y: 0})
	c.curveTo(transform.Point{X: 1, Y: 1}, transform.Point{X: 2, Y: 2}, transform.Point{X: 3, Y: 3})
	require.Len(t, c.segments, 1)
	assert.Equal(t, SegmentCurve, c.segments[0].Kind)
	assert.Len(t, c.segments[0].Points, 4)
}

func TestRectEmitsFivePointClosedLoop(t *testing.T) {
	var c pathCollector
	c.rect(0, 0, 10, 20)
	require.Len(t, c.segments, 1)
	assert.Equal(t, SegmentRect, c.segments[0].Kind)
	pts := c.segments[0].Points
	require.Len(t, pts, 5)
	assert.Equal(t, pts[0], pts[4])
}

func TestCloseEmitsLineBackToSubpathStart(t *testing.T) {
	var c pathCollector
	c.moveTo(transform.Point{X: 0, Y: 0})
	c.lineTo(transform.Point{X: 10, Y: 0})
	c.close()
	require.Len(t, c.segments, 2)
	assert.Equal(t, SegmentLine, c.segments[1].Kind)
	assert.Equal(t, transform.Point{X: 10, Y: 0}, c.segments[1].Points[0])
	assert.Equal(t, transform.Point{X: 0, Y: 0}, c.segments[1].Points[1])
}

func TestCloseWithoutAnySubpathIsIgnored(t *testing.T) {
	var c pathCollector
	c.close()
	assert.Empty(t, c.segments)
}
