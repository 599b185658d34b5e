package config

import (
	"strconv"
	"sync"
	"time"

	"github.com/feichai0017/floorplan-processor/internal/svg"
)

var (
	parserOnce   sync.Once
	parserConfig *ParserConfig
)

// ParserConfig overlays environment tunables on the pipeline defaults.
// Every knob of the parse pipeline and the result cache is reachable here;
// the defaults match svg.DefaultConfig.
type ParserConfig struct {
	Pipeline      svg.Config
	CacheCapacity int
	CacheTTL      time.Duration
}

func GetParserConfig() *ParserConfig {
	parserOnce.Do(func() {
		loadEnv()

		pipeline := svg.DefaultConfig()
		pipeline.MaxPrimitives = envInt("PARSER_MAX_PRIMITIVES", pipeline.MaxPrimitives)
		pipeline.IncludeTransforms = envBool("PARSER_INCLUDE_TRANSFORMS", pipeline.IncludeTransforms)
		pipeline.Deduplicate = envBool("PARSER_DEDUPLICATE", pipeline.Deduplicate)
		pipeline.ContainmentMargin = envFloat("PARSER_CONTAINMENT_MARGIN", pipeline.ContainmentMargin)
		pipeline.Classifier.Threshold = envInt("PARSER_CLASSIFIER_THRESHOLD", pipeline.Classifier.Threshold)
		pipeline.Classifier.WallStrokeMax = envFloat("PARSER_WALL_STROKE_MAX", pipeline.Classifier.WallStrokeMax)

		parserConfig = &ParserConfig{
			Pipeline:      pipeline,
			CacheCapacity: envInt("PARSER_CACHE_CAPACITY", 10),
			CacheTTL:      time.Duration(envInt("PARSER_CACHE_TTL_SECONDS", 3600)) * time.Second,
		}
	})
	return parserConfig
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(getenv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getenv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	switch getenv(key, "") {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}
	return fallback
}
