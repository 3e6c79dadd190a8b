package effect

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Geometry kind names accepted in effect definitions.
const (
	GeometryBeam     = "beam"
	GeometryFountain = "fountain"
	GeometryRadial   = "radial"
)

// Cap policy names accepted in effect definitions.
const (
	CapPolicySkip        = "skip"
	CapPolicyEvictOldest = "evictOldest"
)

// Opacity policy names accepted in effect definitions.
const (
	OpacityPolicyColorTable = "colorTable"
	OpacityPolicySizeLinear = "sizeLinear"
)

// ParseEffectYAML parses one effect definition document and validates it.
// Invalid documents return an error; callers decide whether that is fatal
// (the library loader logs and skips, keeping other effects alive).
func ParseEffectYAML(data []byte) (*EffectConfig, error) {
	var cfg EffectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse effect yaml: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks an effect definition for structural problems:
// unknown enum values, missing required fields, unparsable value strings.
func Validate(cfg *EffectConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("effect missing name")
	}

	switch cfg.Geometry {
	case GeometryBeam, GeometryFountain:
		if cfg.Angle == "" {
			return fmt.Errorf("effect %q: %s geometry requires angle", cfg.Name, cfg.Geometry)
		}
	case GeometryRadial:
		if len(cfg.Rays) == 0 {
			return fmt.Errorf("effect %q: radial geometry requires rays", cfg.Name)
		}
	default:
		return fmt.Errorf("effect %q: unknown geometry %q", cfg.Name, cfg.Geometry)
	}

	if cfg.MaxParticles <= 0 {
		return fmt.Errorf("effect %q: maxParticles must be positive", cfg.Name)
	}

	switch cfg.CapPolicy {
	case CapPolicySkip, CapPolicyEvictOldest:
	case "":
		cfg.CapPolicy = CapPolicySkip // 默认：满员时跳过本次生成
	default:
		return fmt.Errorf("effect %q: unknown capPolicy %q", cfg.Name, cfg.CapPolicy)
	}

	switch cfg.OpacityPolicy {
	case OpacityPolicyColorTable:
		if _, err := ParseColorWeights(cfg.Colors); err != nil {
			return fmt.Errorf("effect %q: %w", cfg.Name, err)
		}
	case OpacityPolicySizeLinear:
		if cfg.OpacityRange == "" {
			return fmt.Errorf("effect %q: sizeLinear policy requires opacityRange", cfg.Name)
		}
		if cfg.Colors != "" {
			if _, err := ParseColorWeights(cfg.Colors); err != nil {
				return fmt.Errorf("effect %q: %w", cfg.Name, err)
			}
		}
	default:
		return fmt.Errorf("effect %q: unknown opacityPolicy %q", cfg.Name, cfg.OpacityPolicy)
	}

	if cfg.Shapes == "" {
		return fmt.Errorf("effect %q: missing shapes table", cfg.Name)
	}
	if _, err := ParseWeights(cfg.Shapes); err != nil {
		return fmt.Errorf("effect %q: %w", cfg.Name, err)
	}

	// 所有 mini-format 标量字段在加载期做一次语法检查，
	// 运行时的随机抽取就不再需要处理错误分支。
	scalarFields := []struct {
		label string
		value string
	}{
		{"spawnInterval", cfg.SpawnInterval},
		{"burstStagger", cfg.BurstStagger},
		{"originX", cfg.OriginX},
		{"originY", cfg.OriginY},
		{"angle", cfg.Angle},
		{"distance", cfg.Distance},
		{"duration", cfg.Duration},
		{"size", cfg.Size},
		{"opacityRange", cfg.OpacityRange},
		{"fadeIn", cfg.FadeIn},
		{"fadeOut", cfg.FadeOut},
		{"fadeOutLead", cfg.FadeOutLead},
		{"rotation", cfg.Rotation},
		{"spin", cfg.Spin},
	}
	for _, f := range scalarFields {
		if _, _, kfs, _, err := ParseValue(f.value); err != nil {
			return fmt.Errorf("effect %q: field %s: %w", cfg.Name, f.label, err)
		} else if kfs != nil {
			return fmt.Errorf("effect %q: field %s: keyframes not allowed", cfg.Name, f.label)
		}
	}

	if cfg.ScaleOverLife != "" {
		if _, _, kfs, _, err := ParseValue(cfg.ScaleOverLife); err != nil {
			return fmt.Errorf("effect %q: field scaleOverLife: %w", cfg.Name, err)
		} else if kfs == nil {
			return fmt.Errorf("effect %q: scaleOverLife must be a keyframe list", cfg.Name)
		}
	}

	if cfg.Duration == "" {
		return fmt.Errorf("effect %q: missing duration", cfg.Name)
	}
	if cfg.Distance == "" {
		return fmt.Errorf("effect %q: missing distance", cfg.Name)
	}

	return nil
}
