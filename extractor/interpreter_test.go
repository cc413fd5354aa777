package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryusui-hiro/pdfcore/contentstream"
	"github.com/ryusui-hiro/pdfcore/internal/transform"
	"github.com/ryusui-hiro/pdfcore/model"
)

func TestInterpretEmptyStreamReturnsEmptyResult(t *testing.T) {
	result, err := Interpret(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result.TextRuns)
	assert.Empty(t, result.Images)
	assert.Empty(t, result.Paths)
}

func TestBeginTextResetsBaselineAcrossTwoTextObjects(t *testing.T) {
	// Universal property: BeginText; TextMatrix(M); BeginText; TextDraw("X")
	// yields a baseline of (0,0).
	ops := []contentstream.Op{
		contentstream.BeginText{},
		contentstream.SetTextMatrix{Matrix: transform.New(1, 0, 0, 1, 50, 50)},
		contentstream.BeginText{},
		contentstream.TextFont{Name: "F1", Size: 10},
		contentstream.TextDraw{Bytes: []byte("X")},
	}
	fonts := map[string]*model.ResolvedFont{"F1": {}}
	result, err := Interpret(ops, nil, fonts)
	require.NoError(t, err)
	require.Len(t, result.TextRuns, 1)
	assert.Equal(t, 0.0, result.TextRuns[0].BaselineX)
	assert.Equal(t, 0.0, result.TextRuns[0].BaselineY)
}

func TestAdjustedTextKerningScenario(t *testing.T) {
	ops := []contentstream.Op{
		contentstream.BeginText{},
		contentstream.TextFont{Name: "F1", Size: 12},
		contentstream.TextDrawAdjusted{Items: []contentstream.AdjustedItem{
			{Text: []byte("A"), IsText: true},
			{Spacing: 100},
			{Text: []byte("V"), IsText: true},
		}},
	}
	fonts := map[string]*model.ResolvedFont{
		"F1": {Widths: map[uint16]float64{'A': 500, 'V': 500}},
	}
	result, err := Interpret(ops, nil, fonts)
	require.NoError(t, err)
	require.Len(t, result.TextRuns, 2)
	assert.InDelta(t, 0, result.TextRuns[0].BaselineX, 1e-9)
	assert.InDelta(t, 4.8, result.TextRuns[1].BaselineX, 1e-9)
}

func TestTextRunsPreserveOperatorOrder(t *testing.T) {
	ops := []contentstream.Op{
		contentstream.BeginText{},
		contentstream.TextFont{Name: "F1", Size: 10},
		contentstream.TextDraw{Bytes: []byte("one")},
		contentstream.TextDraw{Bytes: []byte("two")},
		contentstream.TextDraw{Bytes: []byte("three")},
	}
	fonts := map[string]*model.ResolvedFont{"F1": {}}
	result, err := Interpret(ops, nil, fonts)
	require.NoError(t, err)
	require.Len(t, result.TextRuns, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{
		result.TextRuns[0].Text, result.TextRuns[1].Text, result.TextRuns[2].Text,
	})
}

func TestUnbalancedRestoreIsAbsorbedSilently(t *testing.T) {
	ops := []contentstream.Op{
		contentstream.Restore{},
		contentstream.Transform{Matrix: transform.Translation(1, 1)},
	}
	_, err := Interpret(ops, nil, nil)
	assert.NoError(t, err)
}

func TestUnknownXObjectIsSkippedSilently(t *testing.T) {
	ops := []contentstream.Op{
		contentstream.XObjectDraw{Name: "NotThere"},
	}
	resources := &model.PageResources{}
	result, err := Interpret(ops, resources, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Images)
}
