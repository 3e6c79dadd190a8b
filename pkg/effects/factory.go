package effects

import (
	"image/color"

	"github.com/gonewx/driftfx/internal/effect"
	"github.com/gonewx/driftfx/pkg/types"
)

// ParticleProto holds the per-particle attributes drawn by the factory before
// motion is attached: what the particle looks like, not where it goes.
type ParticleProto struct {
	Shape       types.ShapeKind
	Size        float64
	Color       color.RGBA
	BaseOpacity float64 // 基础不透明度 [0,1]，渲染时再乘以包络 alpha
	Rotation    float64 // 初始旋转角度（度）
}

// defaultColor is used when a spec carries no color table (sizeLinear effects
// may omit colors entirely).
var defaultColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// NewParticleProto draws one particle's visual attributes from the spec:
// shape and size from their weighted/range draws, then color and opacity
// according to the spec's opacity policy.
func NewParticleProto(spec *effect.Spec) ParticleProto {
	proto := ParticleProto{
		Size:     spec.Size.Draw(),
		Rotation: spec.Rotation.Draw(),
	}

	shapeName := effect.PickWeighted(spec.Shapes)
	kind, err := types.ParseShapeKind(shapeName)
	if err != nil {
		// Unknown shape names degrade to circles instead of dropping the
		// spawn; the table syntax itself was validated at resolve time.
		kind = types.ShapeCircle
	}
	proto.Shape = kind

	proto.Color, proto.BaseOpacity = drawColorAndOpacity(spec, proto.Size)
	return proto
}

// drawColorAndOpacity applies the spec's opacity policy.
//
//   - colorTable: each color entry carries its own opacity; one weighted draw
//     decides both ("颜色和透明度绑定抽取").
//   - sizeLinear: opacity scales linearly with the size draw across the
//     configured opacity range; color comes from the (opacity-less) color
//     table when present, otherwise white.
func drawColorAndOpacity(spec *effect.Spec, size float64) (color.RGBA, float64) {
	switch spec.OpacityPolicy {
	case effect.OpacityPolicySizeLinear:
		c := defaultColor
		if len(spec.Colors) > 0 {
			c = effect.PickColorWeighted(spec.Colors).Color
		}
		return c, sizeLinearOpacity(spec, size)
	default: // effect.OpacityPolicyColorTable
		choice := effect.PickColorWeighted(spec.Colors)
		return choice.Color, choice.Opacity
	}
}

// sizeLinearOpacity maps size within its configured range onto the opacity
// range: the smallest particles get OpacityRange.Min, the largest get Max.
func sizeLinearOpacity(spec *effect.Spec, size float64) float64 {
	span := spec.Size.Max - spec.Size.Min
	if span <= 0 {
		return spec.OpacityRange.Max
	}
	t := (size - spec.Size.Min) / span
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return spec.OpacityRange.Min + t*(spec.OpacityRange.Max-spec.OpacityRange.Min)
}
