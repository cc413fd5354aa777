// Package layout implements C8, the layout builder: it clusters the raw
// per-operator output of the extractor (text runs, positioned images, path
// segments) into text, image, and object layouts, detects captions, and
// attaches each caption to the single best image or object layout.
//
// Grounded on the run-clustering idiom in unidoc-unipdf's
// extractor/text_strata.go (binning marks by vertical position before
// grouping into lines/paragraphs) and extractor/text_para.go (paragraph
// merge by proximity), generalised to the margin formula and caption
// lexicon this spec defines.
package layout

import (
	"math"
	"strings"

	"github.com/ryusui-hiro/pdfcore/extractor"
	"github.com/ryusui-hiro/pdfcore/internal/transform"
)

// Caption attachment thresholds, per spec.
const (
	maxCaptionXGap = 40.0
	maxCaptionYGap = 80.0
	captionEpsilon = 1e-3
)

// CaptionInfo is a caption attached to an image or object layout.
type CaptionInfo struct {
	Text string
	BBox transform.Rect
}

// TextLayout is a cluster of text runs, ordered top to bottom.
type TextLayout struct {
	BBox      transform.Rect
	Lines     []string
	Text      string
	IsCaption bool
}

// ImageLayout is one positioned image, plus any captions attached to it.
type ImageLayout struct {
	Name     string
	BBox     transform.Rect
	Captions []CaptionInfo
}

// ObjectLayout is a cluster of path segments, plus any captions attached.
type ObjectLayout struct {
	BBox     transform.Rect
	Kinds    []string
	Captions []CaptionInfo
}

// Bounds implements captionTarget.
func (l *ImageLayout) Bounds() transform.Rect { return l.BBox }

// Extend implements captionTarget.
func (l *ImageLayout) Extend(b transform.Rect) { l.BBox = transform.Union(l.BBox, b) }

// AddCaption implements captionTarget.
func (l *ImageLayout) AddCaption(c CaptionInfo) { l.Captions = append(l.Captions, c) }

// Bounds implements captionTarget.
func (l *ObjectLayout) Bounds() transform.Rect { return l.BBox }

// Extend implements captionTarget.
func (l *ObjectLayout) Extend(b transform.Rect) { l.BBox = transform.Union(l.BBox, b) }

// AddCaption implements captionTarget.
func (l *ObjectLayout) AddCaption(c CaptionInfo) { l.Captions = append(l.Captions, c) }

// captionTarget is the attachment destination interface shared by image and
// object layouts.
type captionTarget interface {
	Bounds() transform.Rect
	Extend(transform.Rect)
	AddCaption(CaptionInfo)
}

// Build runs the whole of C8 over one page's extractor.Result: text layouts
// (caption groups stay in this list, flagged with IsCaption), image
// layouts, and object layouts, with captions attached to the single best
// target.
func Build(result *extractor.Result) ([]TextLayout, []ImageLayout, []ObjectLayout) {
	texts := buildTextLayouts(result.TextRuns)
	images := buildImageLayouts(result.Images)
	objects := buildObjectLayouts(result.Paths)
	attachCaptions(texts, images, objects)
	return texts, images, objects
}

func runHeight(r transform.Rect) float64 {
	h := math.Abs(r.Y1 - r.Y0)
	if h < 1 {
		return 1
	}
	return h
}

// axisGap returns the gap between two 1-D intervals: 0 when they overlap
// (or touch), otherwise the distance separating them.
func axisGap(a0, a1, b0, b1 float64) float64 {
	if a1 < b0 {
		return b0 - a1
	}
	if b1 < a0 {
		return a0 - b1
	}
	return 0
}

type textRunSortable = extractor.TextRun

func sortRunsDescY1AscX0(runs []textRunSortable) {
	sortStable(len(runs), func(i, j int) bool {
		if runs[i].BBox.Y1 != runs[j].BBox.Y1 {
			return runs[i].BBox.Y1 > runs[j].BBox.Y1
		}
		return runs[i].BBox.X0 < runs[j].BBox.X0
	}, func(i, j int) { runs[i], runs[j] = runs[j], runs[i] })
}

// sortStable is a tiny insertion sort: the run/layout counts per page are
// small enough that O(n^2) is not a concern, and it keeps this package
// free of a sort.Interface boilerplate type per sorted slice.
func sortStable(n int, less func(i, j int) bool, swap func(i, j int)) {
	for i := 1; i < n; i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			swap(j, j-1)
		}
	}
}

type textGroup struct {
	bbox transform.Rect
	runs []extractor.TextRun
}

func buildTextLayouts(runs []extractor.TextRun) []TextLayout {
	sorted := make([]extractor.TextRun, len(runs))
	copy(sorted, runs)
	sortRunsDescY1AscX0(sorted)

	var groups []*textGroup
	for _, run := range sorted {
		h := runHeight(run.BBox)
		hMargin := 0.8*h + 4
		vMargin := 1.5*h + 4

		var target *textGroup
		for _, g := range groups {
			xGap := axisGap(run.BBox.X0, run.BBox.X1, g.bbox.X0, g.bbox.X1)
			yGap := axisGap(run.BBox.Y0, run.BBox.Y1, g.bbox.Y0, g.bbox.Y1)
			if xGap <= hMargin && yGap <= vMargin {
				target = g
				break
			}
		}
		if target == nil {
			target = &textGroup{bbox: run.BBox}
			groups = append(groups, target)
		} else {
			target.bbox = transform.Union(target.bbox, run.BBox)
		}
		target.runs = append(target.runs, run)
	}

	layouts := make([]TextLayout, 0, len(groups))
	for _, g := range groups {
		lines := make([]extractor.TextRun, len(g.runs))
		copy(lines, g.runs)
		sortStable(len(lines), func(i, j int) bool {
			return centerY(lines[i].BBox) > centerY(lines[j].BBox)
		}, func(i, j int) { lines[i], lines[j] = lines[j], lines[i] })

		texts := make([]string, len(lines))
		for i, l := range lines {
			texts[i] = l.Text
		}
		layouts = append(layouts, TextLayout{
			BBox:      g.bbox,
			Lines:     texts,
			Text:      strings.Join(texts, "\n"),
			IsCaption: len(texts) > 0 && isCaptionText(texts[0]),
		})
	}

	sortTextLayoutsFinal(layouts)
	return layouts
}

func centerY(r transform.Rect) float64 {
	return (r.Y0 + r.Y1) / 2
}

func sortTextLayoutsFinal(layouts []TextLayout) {
	sortStable(len(layouts), func(i, j int) bool {
		if layouts[i].BBox.Y1 != layouts[j].BBox.Y1 {
			return layouts[i].BBox.Y1 > layouts[j].BBox.Y1
		}
		return layouts[i].BBox.X0 < layouts[j].BBox.X0
	}, func(i, j int) { layouts[i], layouts[j] = layouts[j], layouts[i] })
}

// captionPrefixes are the case-insensitive English prefixes recognised
// after stripping leading whitespace/bracket characters. The Japanese
// prefixes are checked directly since case-folding does not apply to them.
var captionPrefixes = []string{"fig ", "fig.", "fig(", "figure", "table"}

func isCaptionText(s string) bool {
	trimmed := strings.TrimLeft(s, " \t\r\n([")
	if strings.HasPrefix(trimmed, "図") || strings.HasPrefix(trimmed, "表") {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, p := range captionPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func buildImageLayouts(images []extractor.PositionedImage) []ImageLayout {
	layouts := make([]ImageLayout, 0, len(images))
	for _, img := range images {
		layouts = append(layouts, ImageLayout{Name: img.Name, BBox: img.BBox})
	}
	return layouts
}

const objectMergeGap = 4.0

func segmentBounds(seg extractor.PathSegment) (transform.Rect, bool) {
	if len(seg.Points) == 0 {
		return transform.Rect{}, false
	}
	b := transform.BoundsOf(seg.Points)
	if b.X0 == b.X1 && b.Y0 == b.Y1 {
		return transform.Rect{}, false
	}
	return b, true
}

func buildObjectLayouts(segments []extractor.PathSegment) []ObjectLayout {
	var layouts []*ObjectLayout
	for _, seg := range segments {
		bbox, ok := segmentBounds(seg)
		if !ok {
			continue
		}
		var target *ObjectLayout
		for _, l := range layouts {
			xGap := axisGap(bbox.X0, bbox.X1, l.BBox.X0, l.BBox.X1)
			yGap := axisGap(bbox.Y0, bbox.Y1, l.BBox.Y0, l.BBox.Y1)
			if xGap <= objectMergeGap && yGap <= objectMergeGap {
				target = l
				break
			}
		}
		if target == nil {
			target = &ObjectLayout{BBox: bbox}
			layouts = append(layouts, target)
		} else {
			target.BBox = transform.Union(target.BBox, bbox)
		}
		addKind(target, string(seg.Kind))
	}

	out := make([]ObjectLayout, len(layouts))
	for i, l := range layouts {
		out[i] = *l
	}
	return out
}

func addKind(l *ObjectLayout, kind string) {
	for _, k := range l.Kinds {
		if k == kind {
			return
		}
	}
	l.Kinds = append(l.Kinds, kind)
}

// attachCaptions attaches each caption text layout to the single best
// image or object layout, per the §4.8 tie-break rule: smaller y_gap wins;
// within captionEpsilon of the best y_gap, the larger x_gap wins.
func attachCaptions(texts []TextLayout, images []ImageLayout, objects []ObjectLayout) {
	imageTargets := make([]captionTarget, len(images))
	for i := range images {
		imageTargets[i] = &images[i]
	}
	objectTargets := make([]captionTarget, len(objects))
	for i := range objects {
		objectTargets[i] = &objects[i]
	}

	for _, t := range texts {
		if !t.IsCaption {
			continue
		}
		cap := CaptionInfo{Text: t.Text, BBox: t.BBox}
		if attachBest(cap, imageTargets) {
			continue
		}
		attachBest(cap, objectTargets)
	}
}

func attachBest(cap CaptionInfo, targets []captionTarget) bool {
	bestIdx := -1
	var bestYGap, bestXGap float64
	for i, tgt := range targets {
		b := tgt.Bounds()
		xGap := axisGap(cap.BBox.X0, cap.BBox.X1, b.X0, b.X1)
		yGap := axisGap(cap.BBox.Y0, cap.BBox.Y1, b.Y0, b.Y1)
		if xGap > maxCaptionXGap || yGap > maxCaptionYGap {
			continue
		}
		switch {
		case bestIdx == -1:
			bestIdx, bestYGap, bestXGap = i, yGap, xGap
		case yGap < bestYGap-captionEpsilon:
			bestIdx, bestYGap, bestXGap = i, yGap, xGap
		case yGap <= bestYGap+captionEpsilon && xGap > bestXGap:
			bestIdx, bestYGap, bestXGap = i, yGap, xGap
		}
	}
	if bestIdx == -1 {
		return false
	}
	targets[bestIdx].Extend(cap.BBox)
	targets[bestIdx].AddCaption(cap)
	return true
}
