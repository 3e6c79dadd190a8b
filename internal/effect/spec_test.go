package effect

import "testing"

// TestResolve_Sparkle tests mini-format resolution into a typed Spec
func TestResolve_Sparkle(t *testing.T) {
	cfg, err := ParseEffectYAML([]byte(sparkleYAML))
	if err != nil {
		t.Fatalf("Failed to parse sparkle effect: %v", err)
	}

	spec, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve sparkle effect: %v", err)
	}

	if spec.SpawnInterval.Min != 400 || spec.SpawnInterval.Max != 700 {
		t.Errorf("SpawnInterval = %+v, want {400 700}", spec.SpawnInterval)
	}
	if spec.Duration.Min != 22 || spec.Duration.Max != 30 {
		t.Errorf("Duration = %+v, want {22 30}", spec.Duration)
	}
	if spec.DistanceScale != 0.65 {
		t.Errorf("DistanceScale = %v, want 0.65", spec.DistanceScale)
	}
	if len(spec.Shapes) != 2 {
		t.Errorf("Shapes resolved to %d choices, want 2", len(spec.Shapes))
	}
	if len(spec.Colors) != 2 {
		t.Errorf("Colors resolved to %d choices, want 2", len(spec.Colors))
	}
	if len(spec.ScaleOverLife) != 3 {
		t.Errorf("ScaleOverLife resolved to %d keyframes, want 3", len(spec.ScaleOverLife))
	}
	if spec.ScaleInterp != "Linear" {
		t.Errorf("ScaleInterp = %q, want Linear", spec.ScaleInterp)
	}
}

// TestResolve_DistanceScaleDefault tests that an unset scale means no scaling
func TestResolve_DistanceScaleDefault(t *testing.T) {
	doc := `
name: dust
geometry: fountain
spawnInterval: "700"
maxParticles: 60
originX: "[0 1]"
originY: "[0.6 1]"
angle: "[70 110]"
distance: "[120 260]"
duration: "[20 30]"
shapes: "circle:1"
size: "[1 3]"
opacityPolicy: sizeLinear
opacityRange: "[0.3 1]"
`
	cfg, err := ParseEffectYAML([]byte(doc))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	spec, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}
	if spec.DistanceScale != 1.0 {
		t.Errorf("DistanceScale = %v, want default 1.0", spec.DistanceScale)
	}
	// 固定值 "700" 解析为退化区间
	if spec.SpawnInterval.Min != 700 || spec.SpawnInterval.Max != 700 {
		t.Errorf("SpawnInterval = %+v, want {700 700}", spec.SpawnInterval)
	}
}

// TestRange_Draw tests draws stay inside the resolved range
func TestRange_Draw(t *testing.T) {
	r := Range{Min: 2, Max: 8}
	for i := 0; i < 500; i++ {
		v := r.Draw()
		if v < 2 || v > 8 {
			t.Fatalf("Draw() = %v, out of [2 8]", v)
		}
	}

	fixed := Range{Min: 5, Max: 5}
	if v := fixed.Draw(); v != 5 {
		t.Errorf("Draw() on fixed range = %v, want 5", v)
	}
	if !(Range{}).IsZero() {
		t.Error("zero Range should report IsZero")
	}
}
