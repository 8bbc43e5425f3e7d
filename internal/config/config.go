// Package config holds the small set of recognized runtime options for the
// facility intelligence engine. No other environment variables are read by
// the core.
package config

import (
	"os"
	"strconv"
	"time"
)

// BoundingBox describes the country extent used for coverage-grid and
// maximin-placement scans.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Config is the recognized configuration surface for the engine.
type Config struct {
	// DataSourcePath is the facility CSV that cmd/server loads with
	// infrastructure.LoadCSV; when no file is found there the server uses
	// its built-in fixture.
	DataSourcePath string

	// VectorBackendName names a vector backend ("local" or a remote
	// Model-Serving name). It is read from the environment but not
	// consulted: cmd/server always wires the local in-process backend.
	VectorBackendName string

	// Ghana's approximate bounding box, used for coverage grids and
	// maximin new-facility placement.
	BoundingBox BoundingBox

	// EarthRadiusKM is a great-circle radius read from the environment. The
	// spatial index does not read it; it uses its own spatial.EarthRadiusKM
	// constant (6371 km).
	EarthRadiusKM float64

	// VectorSearchTimeout bounds each per-vector call to the vector backend.
	VectorSearchTimeout time.Duration

	// ControlPlaneTimeout is read from the environment; nothing in the
	// engine consumes it.
	ControlPlaneTimeout time.Duration

	// SynthesisTimeout is read from the environment; nothing in the engine
	// consumes it, so the call to the external synthesizer is bounded only
	// by the request context.
	SynthesisTimeout time.Duration

	// SupervisorLLMEnabled is reported as llm_enabled by GET /mlops/status.
	// cmd/server builds the supervisor without an LLM classifier, so this
	// value does not change routing.
	SupervisorLLMEnabled bool
}

// GhanaBoundingBox is the approximate geographic extent of Ghana.
var GhanaBoundingBox = BoundingBox{
	MinLat: 4.5,
	MaxLat: 11.2,
	MinLng: -3.3,
	MaxLng: 1.3,
}

// Default returns the engine's default configuration.
func Default() Config {
	return Config{
		DataSourcePath:       "data/facilities.csv",
		VectorBackendName:    "local",
		BoundingBox:          GhanaBoundingBox,
		EarthRadiusKM:        6371.0,
		VectorSearchTimeout:  30 * time.Second,
		ControlPlaneTimeout:  10 * time.Second,
		SynthesisTimeout:     20 * time.Second,
		SupervisorLLMEnabled: true,
	}
}

// FromEnv overlays recognized environment variables onto the defaults.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("MEDBRIDGE_DATA_SOURCE_PATH"); v != "" {
		cfg.DataSourcePath = v
	}
	if v := os.Getenv("MEDBRIDGE_VECTOR_BACKEND"); v != "" {
		cfg.VectorBackendName = v
	}
	if v := os.Getenv("MEDBRIDGE_EARTH_RADIUS_KM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.EarthRadiusKM = f
		}
	}
	if v := os.Getenv("MEDBRIDGE_VECTOR_SEARCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.VectorSearchTimeout = d
		}
	}
	if v := os.Getenv("MEDBRIDGE_CONTROL_PLANE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ControlPlaneTimeout = d
		}
	}
	if v := os.Getenv("MEDBRIDGE_SYNTHESIS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SynthesisTimeout = d
		}
	}
	if v := os.Getenv("MEDBRIDGE_SUPERVISOR_LLM_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SupervisorLLMEnabled = b
		}
	}

	return cfg
}
