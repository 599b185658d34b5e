package svg

import (
	"github.com/cespare/xxhash/v2"

	"github.com/feichai0017/floorplan-processor/internal/models"
)

// dedupe removes primitives whose geometry, style and transform are all
// byte-identical, keeping the first occurrence. Identifiers are excluded
// from the key: a duplicate may have been assigned a different synthesized
// id. One hash-keyed pass, O(n).
func dedupe(prims []models.Primitive) []models.Primitive {
	seen := make(map[uint64]struct{}, len(prims))
	out := prims[:0:0]
	for _, p := range prims {
		key := identityKey(p)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

func identityKey(p models.Primitive) uint64 {
	h := xxhash.New()
	h.WriteString(p.Geometry)
	h.Write([]byte{0x1f})
	h.WriteString(p.Style)
	h.Write([]byte{0x1f})
	h.WriteString(p.Transform)
	return h.Sum64()
}
