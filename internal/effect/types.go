// Package effect provides data structures and parsing functionality for
// DriftFX effect definition documents (YAML).
//
// An effect definition describes one particle effect variant: its spawn
// geometry, cadence, population cap, shape/color draws and motion ranges.
// Scalar fields use a compact value mini-format, e.g. "3", "[1 3]" or
// "0,0 0.2,1 1,0" (关键帧列表), parsed by ParseValue.
package effect

import "image/color"

// Keyframe represents a single keyframe in an animation curve.
// Used for animating particle properties over normalized lifetime (0-1).
type Keyframe struct {
	Time  float64 // Normalized time (0-1)
	Value float64 // Value at this keyframe
}

// WeightedChoice is one entry of a weighted categorical table,
// e.g. "circle:95 star:5" parses to two choices.
type WeightedChoice struct {
	Value  string  // Choice name (shape kind, etc.)
	Weight float64 // Relative weight, must be > 0
}

// ColorChoice is one entry of a weighted color/opacity table,
// e.g. "#ffd27f@0.8:80" → 80 parts of color #ffd27f at base opacity 0.8.
type ColorChoice struct {
	Color   color.RGBA // Fill color
	Opacity float64    // Base opacity (0-1)
	Weight  float64    // Relative weight, must be > 0
}

// Ray is one fixed emission direction of a radial effect.
// A radial spawn event emits one particle per ray simultaneously.
type Ray struct {
	Name  string  `yaml:"name"`  // Identifier for inspection/debugging
	Angle float64 `yaml:"angle"` // Direction in degrees (Y轴向下为正，见运动模型)
}

// EffectConfig is one parsed effect definition document.
//
// String fields hold the value mini-format and stay unresolved here;
// numeric resolution (random draws) happens at spawn time so every
// particle re-rolls its own values.
type EffectConfig struct {
	Name     string `yaml:"name"`     // Unique effect name (library key)
	Geometry string `yaml:"geometry"` // "beam" | "fountain" | "radial"

	// Spawn timing (发射节奏)
	SpawnInterval string `yaml:"spawnInterval"` // ms per spawn, range allowed; empty/0 → burst only
	InitialBurst  int    `yaml:"initialBurst"`  // particles fired at start
	BurstStagger  string `yaml:"burstStagger"`  // ms gap between burst particles
	MaxParticles  int    `yaml:"maxParticles"`  // population cap (active set)
	CapPolicy     string `yaml:"capPolicy"`     // "skip" | "evictOldest"

	// Spawn position, normalized to the host region (0-1)
	OriginX string `yaml:"originX"` // e.g. "0.5" or "[0.45 0.55]"
	OriginY string `yaml:"originY"`

	// Direction and travel
	Angle         string  `yaml:"angle"`         // degrees, range allowed (beam/fountain)
	Rays          []Ray   `yaml:"rays"`          // radial only: fixed direction list
	Distance      string  `yaml:"distance"`      // logical px, range allowed
	DistanceScale float64 `yaml:"distanceScale"` // scale applied to the raw draw (0 → 1.0)
	Duration      string  `yaml:"duration"`      // seconds, range allowed
	Easing        string  `yaml:"easing"`        // position easing name, empty → Linear

	// Appearance
	Shapes        string `yaml:"shapes"`        // weighted table "circle:95 star:5"
	Size          string `yaml:"size"`          // logical px, range allowed
	Colors        string `yaml:"colors"`        // weighted table "#rrggbb@opacity:weight ..."
	OpacityPolicy string `yaml:"opacityPolicy"` // "colorTable" | "sizeLinear"
	OpacityRange  string `yaml:"opacityRange"`  // sizeLinear output range, e.g. "[0.1 1]"
	Additive      bool   `yaml:"additive"`      // render in the additive glow pass

	// Lifetime envelopes
	FadeIn        string `yaml:"fadeIn"`        // seconds, range allowed
	FadeOut       string `yaml:"fadeOut"`       // seconds, range allowed
	FadeOutLead   string `yaml:"fadeOutLead"`   // seconds before flight end the fade completes
	Rotation      string `yaml:"rotation"`      // initial rotation degrees, range allowed
	Spin          string `yaml:"spin"`          // rotation delta over lifetime, degrees
	ScaleOverLife string `yaml:"scaleOverLife"` // optional keyframes, e.g. "0,0.6 0.3,1 1,0.9"
}
