package svg

import (
	"regexp"
	"strconv"

	"github.com/feichai0017/floorplan-processor/internal/models"
)

var numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?`)

// boundingBox is derived on demand from a primitive's geometry and never
// stored on the primitive itself.
type boundingBox struct {
	minX, minY, maxX, maxY float64
}

// boundsOf scans the geometry for numeric coordinate pairs, treating every
// two consecutive numbers as an (x, y) point and ignoring command letters.
// ok is false when the geometry holds fewer than one full pair.
func boundsOf(d string) (box boundingBox, ok bool) {
	nums := numberRe.FindAllString(d, -1)
	first := true
	for i := 0; i+1 < len(nums); i += 2 {
		x, errX := strconv.ParseFloat(nums[i], 64)
		y, errY := strconv.ParseFloat(nums[i+1], 64)
		if errX != nil || errY != nil {
			continue
		}
		if first {
			box = boundingBox{minX: x, minY: y, maxX: x, maxY: y}
			first = false
			continue
		}
		if x < box.minX {
			box.minX = x
		}
		if x > box.maxX {
			box.maxX = x
		}
		if y < box.minY {
			box.minY = y
		}
		if y > box.maxY {
			box.maxY = y
		}
	}
	return box, !first
}

// contains reports whether other fits inside b, allowing margin units of
// floating-point and rounding slack on every edge.
func (b boundingBox) contains(other boundingBox, margin float64) bool {
	return other.minX >= b.minX-margin &&
		other.maxX <= b.maxX+margin &&
		other.minY >= b.minY-margin &&
		other.maxY <= b.maxY+margin
}

// filterContained drops primitives fully enclosed by another primitive's
// bounding box. Wall primitives are never dropped, nested or not. The check
// is a pairwise O(n^2) pass; n is bounded by the extraction cap, which is
// the documented scaling limit of this step.
func filterContained(prims []models.Primitive, margin float64) []models.Primitive {
	boxes := make([]boundingBox, len(prims))
	valid := make([]bool, len(prims))
	for i, p := range prims {
		boxes[i], valid[i] = boundsOf(p.Geometry)
	}

	out := prims[:0:0]
	for i, p := range prims {
		if p.Category == models.CategoryWall || !valid[i] {
			out = append(out, p)
			continue
		}
		enclosed := false
		for j := range prims {
			if j == i || !valid[j] {
				continue
			}
			if !boxes[j].contains(boxes[i], margin) {
				continue
			}
			// Mutually containing boxes (near-identical extents): keep
			// the earlier primitive, drop the later.
			if boxes[i].contains(boxes[j], margin) && i < j {
				continue
			}
			enclosed = true
			break
		}
		if !enclosed {
			out = append(out, p)
		}
	}
	return out
}
