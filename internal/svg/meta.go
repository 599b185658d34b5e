package svg

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/feichai0017/floorplan-processor/internal/models"
)

var attrRe = regexp.MustCompile(`([A-Za-z_:][-A-Za-z0-9_:.]*)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// ExtractDimensions recovers the declared canvas bounds from a bounded
// prefix of the document. It scans for the first <svg ...> opening tag and
// reads width, height and viewBox off it; no tree is built. Missing
// attributes are defaulted, a missing root tag is fatal.
func ExtractDimensions(prefix []byte) (models.Dimensions, error) {
	start := indexTagStart(prefix, "svg")
	if start < 0 {
		return models.Dimensions{}, fmt.Errorf("no svg root tag in first %d bytes: %w", len(prefix), ErrMalformedSource)
	}

	tag := prefix[start:]
	if end := bytes.IndexByte(tag, '>'); end >= 0 {
		tag = tag[:end]
	}

	attrs := parseAttrs(string(tag))
	dims := models.Dimensions{
		Width:   roundUnit(attrs["width"]),
		Height:  roundUnit(attrs["height"]),
		ViewBox: attrs["viewBox"],
	}
	if dims.ViewBox == "" {
		dims.ViewBox = fmt.Sprintf("0 0 %d %d", dims.Width, dims.Height)
	}
	return dims, nil
}

// parseAttrs pulls attribute key/value pairs out of a single tag's text.
func parseAttrs(tag string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrRe.FindAllStringSubmatch(tag, -1) {
		val := m[2]
		if val == "" {
			val = m[3]
		}
		attrs[m[1]] = val
	}
	return attrs
}

// roundUnit parses a length attribute such as "1000", "1000.4" or "1000px"
// and rounds it to the nearest whole unit. Unparsable values become 0.
func roundUnit(s string) int {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "abcdefghijklmnopqrstuvwxyz%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(f))
}

// indexTagStart finds the offset of "<name" followed by a tag-ending
// character, so "<svg" does not match "<svgfoo".
func indexTagStart(b []byte, name string) int {
	needle := []byte("<" + name)
	from := 0
	for {
		i := bytes.Index(b[from:], needle)
		if i < 0 {
			return -1
		}
		i += from
		rest := b[i+len(needle):]
		if len(rest) == 0 {
			// Tag cut off at the buffer edge; treat as a candidate.
			return i
		}
		switch rest[0] {
		case ' ', '\t', '\r', '\n', '/', '>':
			return i
		}
		from = i + 1
	}
}
