package effect

import "fmt"

// Range is a resolved [min,max] scalar field. Draws are uniform per call, so
// every particle re-rolls its own value.
type Range struct {
	Min, Max float64
}

// Draw returns a fresh uniform draw from the range.
func (r Range) Draw() float64 {
	return RandomInRange(r.Min, r.Max)
}

// IsZero reports whether the range was left unset (both bounds zero).
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Spec is an EffectConfig with every mini-format field parsed into its typed
// form. The runtime only ever sees Specs; parsing errors surface once, at
// resolve time, instead of once per spawn.
type Spec struct {
	Name     string
	Geometry string

	SpawnInterval Range // ms；零值表示只用初始爆发
	InitialBurst  int
	BurstStagger  Range // ms
	MaxParticles  int
	CapPolicy     string

	OriginX Range // normalized region coords (0-1)
	OriginY Range

	Angle         Range // degrees
	Rays          []Ray
	Distance      Range // logical px
	DistanceScale float64
	Duration      Range // seconds
	Easing        string

	Shapes        []WeightedChoice
	Size          Range
	Colors        []ColorChoice
	OpacityPolicy string
	OpacityRange  Range
	Additive      bool

	FadeIn      Range // seconds
	FadeOut     Range
	FadeOutLead Range
	Rotation    Range // degrees
	Spin        Range // degrees over full lifetime

	ScaleOverLife []Keyframe
	ScaleInterp   string
}

// Resolve parses all mini-format fields of a validated config into a Spec.
func (c *EffectConfig) Resolve() (*Spec, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	spec := &Spec{
		Name:          c.Name,
		Geometry:      c.Geometry,
		InitialBurst:  c.InitialBurst,
		MaxParticles:  c.MaxParticles,
		CapPolicy:     c.CapPolicy,
		Rays:          c.Rays,
		DistanceScale: c.DistanceScale,
		Easing:        c.Easing,
		OpacityPolicy: c.OpacityPolicy,
		Additive:      c.Additive,
	}
	if spec.DistanceScale == 0 {
		spec.DistanceScale = 1.0 // 未配置缩放时不缩放
	}

	var err error
	ranges := []struct {
		dst   *Range
		value string
		label string
	}{
		{&spec.SpawnInterval, c.SpawnInterval, "spawnInterval"},
		{&spec.BurstStagger, c.BurstStagger, "burstStagger"},
		{&spec.OriginX, c.OriginX, "originX"},
		{&spec.OriginY, c.OriginY, "originY"},
		{&spec.Angle, c.Angle, "angle"},
		{&spec.Distance, c.Distance, "distance"},
		{&spec.Duration, c.Duration, "duration"},
		{&spec.Size, c.Size, "size"},
		{&spec.OpacityRange, c.OpacityRange, "opacityRange"},
		{&spec.FadeIn, c.FadeIn, "fadeIn"},
		{&spec.FadeOut, c.FadeOut, "fadeOut"},
		{&spec.FadeOutLead, c.FadeOutLead, "fadeOutLead"},
		{&spec.Rotation, c.Rotation, "rotation"},
		{&spec.Spin, c.Spin, "spin"},
	}
	for _, r := range ranges {
		r.dst.Min, r.dst.Max, _, _, err = ParseValue(r.value)
		if err != nil {
			return nil, fmt.Errorf("effect %q: field %s: %w", c.Name, r.label, err)
		}
	}

	spec.Shapes, err = ParseWeights(c.Shapes)
	if err != nil {
		return nil, fmt.Errorf("effect %q: %w", c.Name, err)
	}

	if c.Colors != "" {
		spec.Colors, err = ParseColorWeights(c.Colors)
		if err != nil {
			return nil, fmt.Errorf("effect %q: %w", c.Name, err)
		}
	}

	if c.ScaleOverLife != "" {
		_, _, spec.ScaleOverLife, spec.ScaleInterp, err = ParseValue(c.ScaleOverLife)
		if err != nil {
			return nil, fmt.Errorf("effect %q: field scaleOverLife: %w", c.Name, err)
		}
	}

	return spec, nil
}
