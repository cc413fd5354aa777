package extractor

import "github.com/ryusui-hiro/pdfcore/internal/transform"

// SegmentKind tags a PathSegment's geometry.
type SegmentKind string

// Segment kinds emitted by the path collector (C6).
const (
	SegmentLine  SegmentKind = "line"
	SegmentCurve SegmentKind = "curve"
	SegmentRect  SegmentKind = "rect"
)

// PathSegment is one emitted drawing primitive, in stream order and in
// content-stream (not CTM-transformed) coordinates.
type PathSegment struct {
	Kind   SegmentKind
	Points []transform.Point
}

// pathCollector implements C6: it tracks the current point and the current
// subpath's start point and emits segments as operators are applied. It is
// purely stateful over operator order -- no CTM is applied here.
type pathCollector struct {
	current      *transform.Point
	subpathStart *transform.Point
	segments     []PathSegment
}

func (c *pathCollector) moveTo(p transform.Point) {
	c.current = &p
	start := p
	c.subpathStart = &start
}

func (c *pathCollector) lineTo(p transform.Point) {
	if c.current != nil {
		c.segments = append(c.segments, PathSegment{
			Kind:   SegmentLine,
			Points: []transform.Point{*c.current, p},
		})
	}
	c.current = &p
}

func (c *pathCollector) curveTo(c1, c2, p transform.Point) {
	if c.current != nil {
		c.segments = append(c.segments, PathSegment{
			Kind:   SegmentCurve,
			Points: []transform.Point{*c.current, c1, c2, p},
		})
	}
	c.current = &p
}

func (c *pathCollector) rect(x, y, w, h float64) {
	points := []transform.Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
		{X: x, Y: y},
	}
	c.segments = append(c.segments, PathSegment{Kind: SegmentRect, Points: points})
	start := points[0]
	c.current = &start
	c.subpathStart = &start
}

func (c *pathCollector) close() {
	if c.current != nil && c.subpathStart != nil {
		c.segments = append(c.segments, PathSegment{
			Kind:   SegmentLine,
			Points: []transform.Point{*c.current, *c.subpathStart},
		})
		c.current = c.subpathStart
	}
}
