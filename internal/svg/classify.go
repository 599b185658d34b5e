package svg

import (
	"strconv"
	"strings"

	"github.com/feichai0017/floorplan-processor/internal/models"
)

// Classifier assigns a category to a primitive from heuristic structural
// signals. It is best-effort: false positives and negatives are expected
// and downstream consumers tolerate them.
type Classifier struct {
	cfg ClassifierConfig
}

func NewClassifier(cfg ClassifierConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify returns exactly one category. Explicitly labelled windows and
// doors are honoured first; everything else is scored against the wall
// heuristic.
func (c *Classifier) Classify(id, style, d string) models.Category {
	lower := strings.ToLower(id)
	switch {
	case strings.HasPrefix(lower, "window"):
		return models.CategoryWindow
	case strings.HasPrefix(lower, "door"):
		return models.CategoryDoor
	}
	if c.Score(style, d) >= c.cfg.Threshold {
		return models.CategoryWall
	}
	return models.CategoryOther
}

// Score accumulates the weighted structural signals for a primitive.
func (c *Classifier) Score(style, d string) int {
	score := 0
	if c.hasWallStroke(style) {
		score += c.cfg.StyleWeight
	}

	cmds := commandLetters(d)
	if isRectilinear(cmds) {
		score += c.cfg.RectilinearWeight
	}
	if hasHorizontal(cmds) && hasVertical(cmds) {
		score += c.cfg.OrthogonalWeight
	}
	if len(cmds) >= c.cfg.MinCommands {
		score += c.cfg.ComplexityWeight
	}
	return score
}

// hasWallStroke reports whether the style declares a black stroke of wall
// thickness with no fill.
func (c *Classifier) hasWallStroke(style string) bool {
	stroke, width, fill := splitStrokeStyle(style)

	if !isBlack(stroke) {
		return false
	}
	if width <= 0 || width > c.cfg.WallStrokeMax {
		return false
	}
	return fill == "" || fill == "none"
}

// splitStrokeStyle pulls stroke colour, stroke-width and fill out of an
// inline style declaration.
func splitStrokeStyle(style string) (stroke string, width float64, fill string) {
	for _, decl := range strings.Split(style, ";") {
		key, val, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(strings.ToLower(key))
		val = strings.TrimSpace(strings.ToLower(val))
		switch key {
		case "stroke":
			stroke = val
		case "stroke-width":
			w, err := strconv.ParseFloat(strings.TrimSuffix(val, "px"), 64)
			if err == nil {
				width = w
			}
		case "fill":
			fill = val
		}
	}
	return stroke, width, fill
}

func isBlack(colour string) bool {
	switch strings.ReplaceAll(colour, " ", "") {
	case "black", "#000", "#000000", "rgb(0,0,0)":
		return true
	}
	return false
}

// commandLetters returns the drawing command sequence of a path, upper-cased.
func commandLetters(d string) []byte {
	var cmds []byte
	for i := 0; i < len(d); i++ {
		ch := d[i]
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		switch ch {
		case 'M', 'L', 'H', 'V', 'Z', 'C', 'S', 'Q', 'T', 'A':
			cmds = append(cmds, ch)
		}
	}
	return cmds
}

// isRectilinear reports a move followed by alternating horizontal/vertical
// segments, the dominant wall encoding in architectural exports. A trailing
// close command is permitted.
func isRectilinear(cmds []byte) bool {
	if len(cmds) < 3 || cmds[0] != 'M' {
		return false
	}
	body := cmds[1:]
	if body[len(body)-1] == 'Z' {
		body = body[:len(body)-1]
	}
	if len(body) < 2 {
		return false
	}
	for i, ch := range body {
		if ch != 'H' && ch != 'V' {
			return false
		}
		if i > 0 && ch == body[i-1] {
			return false
		}
	}
	return true
}

func hasHorizontal(cmds []byte) bool {
	for _, ch := range cmds {
		if ch == 'H' {
			return true
		}
	}
	return false
}

func hasVertical(cmds []byte) bool {
	for _, ch := range cmds {
		if ch == 'V' {
			return true
		}
	}
	return false
}
