package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feichai0017/floorplan-processor/internal/models"
)

const wallStyle = "fill:none;stroke:#000000;stroke-width:0.1"

func TestClassifyWallScenario(t *testing.T) {
	c := NewClassifier(DefaultClassifierConfig())

	// Thin black stroke (+2), rectilinear (+3), orthogonal (+2), >=4
	// commands (+1): full score of 8 against a threshold of 5.
	score := c.Score(wallStyle, "M0,0 H10 V10 H0 Z")
	assert.Equal(t, 8, score)
	assert.Equal(t, models.CategoryWall, c.Classify("p1", wallStyle, "M0,0 H10 V10 H0 Z"))
}

func TestClassifySignalsIndividually(t *testing.T) {
	c := NewClassifier(DefaultClassifierConfig())

	tests := []struct {
		name  string
		style string
		d     string
		score int
	}{
		{"style only", wallStyle, "M0,0", 2},
		{"diagonal line", "", "M0,0 L5,5", 0},
		{"orthogonal but not alternating", "", "M0,0 H1 H2 V3", 3}, // orthogonal +2, 4 commands +1
		{"rectilinear without style", "", "M0,0 H10 V10 H0 Z", 6},
		{"filled shape not a wall stroke", "fill:#ff0000;stroke:#000000;stroke-width:0.1", "M0,0", 0},
		{"thick stroke not a wall stroke", "stroke:#000;stroke-width:3", "M0,0", 0},
		{"zero width not a wall stroke", "stroke:black;stroke-width:0", "M0,0", 0},
		{"curved path", wallStyle, "M0,0 C1,1 2,2 3,3 S4,4 5,5", 2}, // style only
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.score, c.Score(tt.style, tt.d))
		})
	}
}

func TestClassifyBelowThresholdIsOther(t *testing.T) {
	c := NewClassifier(DefaultClassifierConfig())
	assert.Equal(t, models.CategoryOther, c.Classify("p1", "", "M0,0 L5,5"))
}

func TestClassifyThresholdIsTunable(t *testing.T) {
	// Scores 3: orthogonal segments plus the complexity signal, but not
	// alternating. Other at the default threshold, Wall at a lowered one.
	const d = "M0,0 H1 H2 V3"

	c := NewClassifier(DefaultClassifierConfig())
	assert.Equal(t, models.CategoryOther, c.Classify("p1", "", d))

	cfg := DefaultClassifierConfig()
	cfg.Threshold = 3
	c = NewClassifier(cfg)
	assert.Equal(t, models.CategoryWall, c.Classify("p1", "", d))
}

func TestClassifyIDPrefixHints(t *testing.T) {
	c := NewClassifier(DefaultClassifierConfig())

	assert.Equal(t, models.CategoryWindow, c.Classify("Window_3", wallStyle, "M0,0 H10 V10 H0 Z"))
	assert.Equal(t, models.CategoryDoor, c.Classify("door-12", "", "M0,0 L1,1"))
}

func TestClassifyStrokeColourForms(t *testing.T) {
	c := NewClassifier(DefaultClassifierConfig())

	for _, style := range []string{
		"stroke:black;stroke-width:0.2",
		"stroke:#000;stroke-width:0.2",
		"stroke: rgb(0, 0, 0); stroke-width: 0.2",
		"stroke:#000000;stroke-width:0.2;fill:none",
	} {
		assert.Equal(t, 2, c.Score(style, "M0,0"), "style %q", style)
	}

	assert.Equal(t, 0, c.Score("stroke:#fff;stroke-width:0.2", "M0,0"))
}
