package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/floorplan-processor/internal/models"
)

func TestBoundsOf(t *testing.T) {
	box, ok := boundsOf("M10,20 L110,20 L110,120 Z")
	require.True(t, ok)
	assert.Equal(t, boundingBox{minX: 10, minY: 20, maxX: 110, maxY: 120}, box)
}

func TestBoundsOfIgnoresCommandLetters(t *testing.T) {
	box, ok := boundsOf("M-5.5,0 H10 V3e1")
	require.True(t, ok)
	assert.InDelta(t, -5.5, box.minX, 1e-9)
	assert.InDelta(t, 30, box.maxY, 1e-9)
}

func TestBoundsOfEmptyGeometry(t *testing.T) {
	_, ok := boundsOf("Z")
	assert.False(t, ok)
}

func TestContainmentRemovesNestedOther(t *testing.T) {
	outer := models.Primitive{ID: "A", Geometry: "M0,0 L100,100", Category: models.CategoryOther}
	inner := models.Primitive{ID: "B", Geometry: "M10,10 L20,20", Category: models.CategoryOther}

	out := filterContained([]models.Primitive{outer, inner}, 1)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].ID)
}

func TestContainmentNeverRemovesWalls(t *testing.T) {
	outer := models.Primitive{ID: "A", Geometry: "M0,0 L100,100", Category: models.CategoryOther}
	inner := models.Primitive{ID: "B", Geometry: "M10,10 L20,20", Category: models.CategoryWall}

	out := filterContained([]models.Primitive{outer, inner}, 1)
	assert.Len(t, out, 2)
}

func TestContainmentMarginTolerance(t *testing.T) {
	outer := models.Primitive{ID: "A", Geometry: "M0,0 L100,100", Category: models.CategoryOther}
	// Pokes 0.5 units outside the outer box: still within the default
	// margin of 1.
	inner := models.Primitive{ID: "B", Geometry: "M-0.5,10 L20,20", Category: models.CategoryOther}

	out := filterContained([]models.Primitive{outer, inner}, 1)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].ID)

	// With a zero margin it survives.
	out = filterContained([]models.Primitive{outer, inner}, 0)
	assert.Len(t, out, 2)
}

func TestContainmentDisjointBoxesKept(t *testing.T) {
	a := models.Primitive{ID: "A", Geometry: "M0,0 L10,10", Category: models.CategoryOther}
	b := models.Primitive{ID: "B", Geometry: "M50,50 L60,60", Category: models.CategoryOther}

	assert.Len(t, filterContained([]models.Primitive{a, b}, 1), 2)
}

func TestContainmentNearIdenticalBoxesKeepOne(t *testing.T) {
	// Mutually containing extents must not wipe out both primitives.
	a := models.Primitive{ID: "A", Geometry: "M0,0 L10,10", Category: models.CategoryOther, Style: "stroke:#111"}
	b := models.Primitive{ID: "B", Geometry: "M0,0 L10,10.2", Category: models.CategoryOther, Style: "stroke:#222"}

	out := filterContained([]models.Primitive{a, b}, 1)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].ID)
}

func TestContainmentWindowInsideWallOutlineRemoved(t *testing.T) {
	wall := models.Primitive{ID: "w", Geometry: "M0,0 H100 V100 H0 Z", Category: models.CategoryWall}
	window := models.Primitive{ID: "win", Geometry: "M40,0 H60 V5", Category: models.CategoryWindow}

	// Only Wall is exempt; a nested window is filtered like any other
	// non-wall primitive.
	out := filterContained([]models.Primitive{wall, window}, 1)
	require.Len(t, out, 1)
	assert.Equal(t, "w", out[0].ID)
}
