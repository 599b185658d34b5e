package svg

import (
	"bytes"
	"strings"
)

// rawPath is one complete path tag pulled out of the stream, before
// identity assignment and classification.
type rawPath struct {
	ID        string
	D         string
	Style     string
	Transform string
	Offset    int64
}

// ProgressFunc receives a 0-100 completion estimate. Values may repeat and
// 100 may be delivered more than once; consumers must not assume strict
// increase.
type ProgressFunc func(percent int)

// extractor consumes the document as arbitrarily sized chunks and emits
// complete path tags in document order. It keeps only the unconsumed tail
// between chunks, so memory is bounded by the largest single tag rather
// than the document size.
type extractor struct {
	cfg Config

	buf      []byte
	bufBase  int64 // document offset of buf[0]
	consumed int64 // total bytes fed so far
	total    int64

	emitted   int
	truncated bool

	onProgress ProgressFunc
}

func newExtractor(cfg Config, total int64, onProgress ProgressFunc) *extractor {
	return &extractor{cfg: cfg, total: total, onProgress: onProgress}
}

// feed appends one chunk and returns every path tag completed by it.
// Paths with a missing or non move-to geometry are dropped here and never
// reach the rest of the pipeline.
func (e *extractor) feed(chunk []byte) []rawPath {
	e.consumed += int64(len(chunk))
	defer e.reportProgress()

	if e.truncated {
		// Cap already hit: keep draining the stream but hold nothing.
		e.buf = nil
		return nil
	}

	e.buf = append(e.buf, chunk...)

	var out []rawPath
	cursor := 0
	for {
		tag, start, end, ok := nextCompleteTag(e.buf[cursor:])
		if !ok {
			cursor += start
			break
		}
		if e.emitted >= e.cfg.MaxPrimitives {
			e.truncated = true
			e.buf = nil
			return out
		}
		if rp, valid := e.parseTag(tag, e.bufBase+int64(cursor+start)); valid {
			out = append(out, rp)
			e.emitted++
		}
		cursor += end
	}

	// Keep only the tail from the last incomplete tag opening, so a tag
	// split across the chunk boundary is recovered on the next feed.
	e.bufBase += int64(cursor)
	e.buf = append(e.buf[:0], e.buf[cursor:]...)
	return out
}

// finish signals end of stream and reports whether the primitive cap was
// hit at any point.
func (e *extractor) finish() (truncated bool) {
	e.buf = nil
	if e.onProgress != nil {
		e.onProgress(100)
	}
	return e.truncated
}

func (e *extractor) reportProgress() {
	if e.onProgress == nil || e.total <= 0 {
		return
	}
	p := int(e.consumed * 100 / e.total)
	if p > 100 {
		p = 100
	}
	e.onProgress(p)
}

func (e *extractor) parseTag(tag string, offset int64) (rawPath, bool) {
	attrs := parseAttrs(tag)
	d := strings.TrimSpace(attrs["d"])
	if d == "" || (d[0] != 'M' && d[0] != 'm') {
		return rawPath{}, false
	}
	return rawPath{
		ID:        attrs["id"],
		D:         d,
		Style:     attrs["style"],
		Transform: attrs["transform"],
		Offset:    offset,
	}, true
}

// nextCompleteTag scans b for the next whole <path> tag, self-closing or
// paired with </path>. When no complete tag remains it returns ok=false and
// start pointing at the tail that must be carried over: the last incomplete
// tag opening, or len(b) when the remainder holds no opening at all.
func nextCompleteTag(b []byte) (tag string, start, end int, ok bool) {
	start = indexTagStart(b, "path")
	if start < 0 {
		return "", len(b) - partialPrefixLen(b), 0, false
	}

	rest := b[start:]
	gt := bytes.IndexByte(rest, '>')
	if gt < 0 {
		return "", start, 0, false
	}
	if rest[gt-1] == '/' {
		// Self-closing.
		return string(rest[:gt+1]), start, start + gt + 1, true
	}

	closeIdx := bytes.Index(rest[gt:], []byte("</path>"))
	if closeIdx < 0 {
		return "", start, 0, false
	}
	end = start + gt + closeIdx + len("</path>")
	return string(b[start:end]), start, end, true
}

// partialPrefixLen reports how many trailing bytes of b form a proper
// prefix of "<path", e.g. a chunk ending in "<pa".
func partialPrefixLen(b []byte) int {
	const open = "<path"
	max := len(open)
	if len(b) < max {
		max = len(b)
	}
	for k := max; k > 0; k-- {
		if string(b[len(b)-k:]) == open[:k] {
			return k
		}
	}
	return 0
}
