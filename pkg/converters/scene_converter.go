package converters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/feichai0017/floorplan-processor/internal/models"
)

// Scene is the renderer-friendly projection of a floor plan: every
// primitive flattened to a scaled polyline. Clients that cannot interpret
// raw path commands consume this instead of the primitive list.
type Scene struct {
	Floor     int        `json:"floor"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Polylines []Polyline `json:"polylines"`
}

type Polyline struct {
	ID       string          `json:"id"`
	Category models.Category `json:"category"`
	Points   []Point         `json:"points"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SceneConverter flattens parsed plans into scenes.
type SceneConverter struct{}

func NewSceneConverter() *SceneConverter {
	return &SceneConverter{}
}

func (c *SceneConverter) Convert(plan *models.FloorPlan) (*Scene, error) {
	if plan == nil {
		return nil, fmt.Errorf("no plan to convert")
	}

	scene := &Scene{
		Floor:     plan.Floor,
		Width:     plan.Dimensions.Width,
		Height:    plan.Dimensions.Height,
		Polylines: make([]Polyline, 0, len(plan.Primitives)),
	}

	for _, prim := range plan.Primitives {
		points := PathPoints(prim.Geometry, plan.Scale)
		if len(points) == 0 {
			continue
		}
		scene.Polylines = append(scene.Polylines, Polyline{
			ID:       prim.ID,
			Category: prim.Category,
			Points:   points,
		})
	}

	return scene, nil
}

// PathPoints walks a path command sequence tracking the current point and
// returns the visited points with the scale factor applied. Curves are
// approximated by their end points; unrecognized tokens are skipped so a
// partially understood path still yields its line segments.
func PathPoints(d string, scale float64) []Point {
	tokens := strings.Fields(normalizePath(d))
	var (
		points  []Point
		current Point
	)

	i := 0
	for i < len(tokens) {
		switch tokens[i] {
		case "M", "L":
			x, y, ok := floatPair(tokens, i+1)
			if !ok {
				i++
				continue
			}
			current = Point{X: x * scale, Y: y * scale}
			points = append(points, current)
			i += 3
		case "m", "l":
			x, y, ok := floatPair(tokens, i+1)
			if !ok {
				i++
				continue
			}
			current = Point{X: current.X + x*scale, Y: current.Y + y*scale}
			points = append(points, current)
			i += 3
		case "H", "h", "V", "v":
			v, err := operand(tokens, i+1)
			if err != nil {
				i++
				continue
			}
			switch tokens[i] {
			case "H":
				current.X = v * scale
			case "h":
				current.X += v * scale
			case "V":
				current.Y = v * scale
			case "v":
				current.Y += v * scale
			}
			points = append(points, current)
			i += 2
		case "Z", "z":
			if len(points) > 0 {
				points = append(points, points[0])
				current = points[0]
			}
			i++
		default:
			i++
		}
	}

	return points
}

// normalizePath splits command letters from their operands so the token
// walk sees "M0,0H10" and "M 0 0 H 10" the same way.
func normalizePath(d string) string {
	var b strings.Builder
	b.Grow(len(d) * 2)
	for i, r := range d {
		switch {
		case r == ',':
			b.WriteByte(' ')
		case (r == 'e' || r == 'E') && i > 0 && isDigit(d[i-1]):
			// Exponent inside a number, not a command letter.
			b.WriteRune(r)
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func operand(tokens []string, i int) (float64, error) {
	if i >= len(tokens) {
		return 0, fmt.Errorf("missing operand")
	}
	return strconv.ParseFloat(tokens[i], 64)
}

func floatPair(tokens []string, i int) (x, y float64, ok bool) {
	x, errX := operand(tokens, i)
	y, errY := operand(tokens, i+1)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return x, y, true
}
