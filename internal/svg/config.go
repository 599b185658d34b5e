package svg

// UnitScale converts declared SVG units into planner units. It matches the
// fixed factor the rendering clients assume and is not derived from the
// document.
const UnitScale = 100.0

// Config carries every tunable of the parse pipeline. Zero values are not
// usable; start from DefaultConfig.
type Config struct {
	// MaxPrimitives caps the number of paths emitted by one parse. Once
	// reached the remaining source is drained but nothing more is emitted.
	MaxPrimitives int

	// IncludeTransforms keeps the transform attribute on emitted primitives.
	IncludeTransforms bool

	// Deduplicate collapses byte-identical (geometry, style, transform)
	// primitives after classification.
	Deduplicate bool

	// ContainmentMargin is the absolute tolerance, in document units, used
	// when testing whether one bounding box encloses another.
	ContainmentMargin float64

	// ChunkSize is the read size of the streaming loop.
	ChunkSize int

	// MetaPrefixSize bounds how far into the document the root element is
	// searched for.
	MetaPrefixSize int

	Classifier ClassifierConfig
}

// ClassifierConfig holds the weights of the wall-scoring heuristic. The
// heuristic is approximate and sources differ in how they encode walls, so
// the weights are data rather than constants.
type ClassifierConfig struct {
	// StyleWeight scores a thin black stroke with no fill.
	StyleWeight int
	// RectilinearWeight scores a move followed by alternating
	// horizontal/vertical segments.
	RectilinearWeight int
	// OrthogonalWeight scores the presence of at least one horizontal and
	// one vertical segment.
	OrthogonalWeight int
	// ComplexityWeight scores geometries with at least MinCommands drawing
	// commands.
	ComplexityWeight int

	// Threshold is the minimum accumulated score for a Wall classification.
	Threshold int

	// WallStrokeMax is the largest stroke-width still considered a wall
	// stroke. Strokes of zero or unparsable width do not qualify.
	WallStrokeMax float64

	// MinCommands is the command count the complexity signal requires.
	MinCommands int
}

func DefaultConfig() Config {
	return Config{
		MaxPrimitives:     10000,
		IncludeTransforms: true,
		Deduplicate:       true,
		ContainmentMargin: 1,
		ChunkSize:         32 * 1024,
		MetaPrefixSize:    2048,
		Classifier:        DefaultClassifierConfig(),
	}
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		StyleWeight:       2,
		RectilinearWeight: 3,
		OrthogonalWeight:  2,
		ComplexityWeight:  1,
		Threshold:         5,
		WallStrokeMax:     0.5,
		MinCommands:       4,
	}
}
