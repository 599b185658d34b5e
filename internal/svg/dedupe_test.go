package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/floorplan-processor/internal/models"
)

func prim(id, d, style, transform string) models.Primitive {
	return models.Primitive{ID: id, Geometry: d, Style: style, Transform: transform}
}

func TestDedupeRemovesIdenticalPrimitives(t *testing.T) {
	// Same geometry, style and absent transform but different ids: still
	// duplicates, ids are excluded from the identity key.
	in := []models.Primitive{
		prim("a", "M0,0 H10", "stroke:#000", ""),
		prim("b", "M0,0 H10", "stroke:#000", ""),
	}

	out := dedupe(in)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestDedupeKeepsDistinctPrimitives(t *testing.T) {
	in := []models.Primitive{
		prim("a", "M0,0 H10", "stroke:#000", ""),
		prim("b", "M0,0 H10", "stroke:#fff", ""),          // different style
		prim("c", "M0,0 H10", "stroke:#000", "scale(2)"),  // different transform
		prim("d", "M0,0 H11", "stroke:#000", ""),          // different geometry
	}

	assert.Len(t, dedupe(in), 4)
}

func TestDedupePreservesFirstOccurrenceOrder(t *testing.T) {
	in := []models.Primitive{
		prim("a", "M0,0 H1", "", ""),
		prim("b", "M0,0 H2", "", ""),
		prim("c", "M0,0 H1", "", ""),
		prim("d", "M0,0 H3", "", ""),
	}

	out := dedupe(in)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, "d", out[2].ID)
}

func TestDedupeIsIdempotent(t *testing.T) {
	in := []models.Primitive{
		prim("a", "M0,0 H1", "", ""),
		prim("b", "M0,0 H1", "", ""),
		prim("c", "M0,0 H2", "", ""),
	}

	once := dedupe(in)
	twice := dedupe(once)
	assert.Equal(t, once, twice)
}
