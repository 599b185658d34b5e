package svg

import (
	"context"
	"fmt"
	"io"

	"github.com/feichai0017/floorplan-processor/internal/models"
	"github.com/feichai0017/floorplan-processor/pkg/logger"
)

// Parser runs the whole extraction pipeline over one source stream:
// metadata scan, streaming tag extraction, identity assignment,
// classification, deduplication and containment filtering. A Parser is
// stateless across invocations and safe for concurrent use; all per-parse
// state lives inside Parse.
type Parser struct {
	cfg Config
	log logger.Logger
}

func NewParser(cfg Config, log logger.Logger) *Parser {
	return &Parser{cfg: cfg, log: log}
}

// Parse consumes r to completion and assembles the floor plan. totalSize is
// the size hint driving the progress estimate; onProgress may be nil. A
// read failure mid-stream aborts the whole invocation with no partial
// result. The primitive cap is not an error: extraction stops emitting,
// the rest of the stream is drained, and the result is marked truncated.
func (p *Parser) Parse(ctx context.Context, r io.Reader, totalSize int64, floor int, onProgress ProgressFunc) (*models.FloorPlan, error) {
	ext := newExtractor(p.cfg, totalSize, onProgress)

	var (
		raws    []rawPath
		header  = make([]byte, 0, p.cfg.MetaPrefixSize)
		dims    models.Dimensions
		dimsSet bool
		chunk   = make([]byte, p.cfg.ChunkSize)
	)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		n, err := r.Read(chunk)
		if n > 0 {
			if len(header) < p.cfg.MetaPrefixSize {
				header = appendBounded(header, chunk[:n], p.cfg.MetaPrefixSize)
			}
			if !dimsSet && len(header) >= p.cfg.MetaPrefixSize {
				// Header budget filled: resolve dimensions now so a
				// missing root tag fails before the body is drained.
				d, derr := ExtractDimensions(header)
				if derr != nil {
					return nil, derr
				}
				dims, dimsSet = d, true
			}
			raws = append(raws, ext.feed(chunk[:n])...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read floor %d source: %w", floor, err)
		}
	}

	if !dimsSet {
		d, derr := ExtractDimensions(header)
		if derr != nil {
			return nil, derr
		}
		dims = d
	}

	truncated := ext.finish()
	if truncated {
		p.log.Warn("primitive limit reached, output truncated",
			logger.Int("floor", floor),
			logger.Int("limit", p.cfg.MaxPrimitives),
		)
	}

	prims := p.assemble(raws, floor)
	if p.cfg.Deduplicate {
		prims = dedupe(prims)
	}
	prims = filterContained(prims, p.cfg.ContainmentMargin)

	return &models.FloorPlan{
		Floor:          floor,
		Dimensions:     dims,
		Scale:          UnitScale,
		PrimitiveCount: len(prims),
		Primitives:     prims,
		Truncated:      truncated,
	}, nil
}

// assemble turns raw tags into classified primitives with unique ids.
func (p *Parser) assemble(raws []rawPath, floor int) []models.Primitive {
	ids := newIDAssigner()
	classifier := NewClassifier(p.cfg.Classifier)

	prims := make([]models.Primitive, 0, len(raws))
	for i, raw := range raws {
		id := ids.assign(raw.ID, i)
		prim := models.Primitive{
			ID:       id,
			Geometry: raw.D,
			Category: classifier.Classify(id, raw.Style, raw.D),
			Style:    raw.Style,
			Floor:    floor,
		}
		if p.cfg.IncludeTransforms {
			prim.Transform = raw.Transform
		}
		prims = append(prims, prim)
	}
	return prims
}

func appendBounded(dst, src []byte, limit int) []byte {
	room := limit - len(dst)
	if room <= 0 {
		return dst
	}
	if len(src) > room {
		src = src[:room]
	}
	return append(dst, src...)
}
