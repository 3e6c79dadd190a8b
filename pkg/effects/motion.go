package effects

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/gonewx/driftfx/internal/effect"
	"github.com/gonewx/driftfx/pkg/types"
)

// easings maps the easing names accepted in effect definitions to their tween
// functions. Unknown names fall back to linear.
var easings = map[string]ease.TweenFunc{
	"":          ease.Linear,
	"Linear":    ease.Linear,
	"EaseIn":    ease.InQuad,
	"EaseOut":   ease.OutQuad,
	"EaseInOut": ease.InOutQuad,
}

// EasingFor returns the tween function for a configured easing name.
func EasingFor(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.Linear
}

// EndPoint computes where a particle's flight ends. Angles follow the usual
// math convention (0° = right, 90° = up, counter-clockwise); the canvas Y
// axis grows downward, hence the minus sign.
func EndPoint(startX, startY, angleDeg, distance float64) (float64, float64) {
	rad := angleDeg * math.Pi / 180
	return startX + distance*math.Cos(rad), startY - distance*math.Sin(rad)
}

// SpawnOrigin draws one spawn point: the normalized origin ranges are mapped
// into the emitter's host region.
func SpawnOrigin(spec *effect.Spec, region types.Rect) (float64, float64) {
	return region.At(spec.OriginX.Draw(), spec.OriginY.Draw())
}

// Motion is one particle's fully drawn flight program: where it ends up, how
// long it takes, and the tweens that animate progress and opacity.
type Motion struct {
	EndX, EndY float64
	Duration   float64 // 秒

	// Progress runs 0→1 over the full lifetime with the spec's easing;
	// positions interpolate start→end against it.
	Progress *gween.Tween

	// AlphaEnv is the fade-in / hold / fade-out envelope. After the sequence
	// completes the particle keeps the final value for the remainder of the
	// fade-out lead window.
	AlphaEnv *gween.Sequence

	RotationSpeed float64 // 度/秒
}

// NewMotion draws distance, duration, spin and the fade windows for one
// particle starting at (startX, startY) and flying along angleDeg.
func NewMotion(spec *effect.Spec, startX, startY, angleDeg float64) Motion {
	distance := spec.Distance.Draw() * spec.DistanceScale
	duration := spec.Duration.Draw()
	if duration <= 0 {
		duration = 0.001 // 防御：时长为零会让粒子永远停在出生点
	}

	endX, endY := EndPoint(startX, startY, angleDeg, distance)

	m := Motion{
		EndX:     endX,
		EndY:     endY,
		Duration: duration,
		Progress: gween.New(0, 1, float32(duration), EasingFor(spec.Easing)),
		AlphaEnv: newAlphaEnvelope(spec, duration),
	}
	if spin := spec.Spin.Draw(); spin != 0 {
		m.RotationSpeed = spin / duration
	}
	return m
}

// newAlphaEnvelope builds the opacity sequence. The fade-out is anchored to
// finish fadeOutLead seconds before the particle's end of life, so particles
// vanish just ahead of recycling instead of popping out.
func newAlphaEnvelope(spec *effect.Spec, duration float64) *gween.Sequence {
	fadeIn := spec.FadeIn.Draw()
	fadeOut := spec.FadeOut.Draw()
	lead := spec.FadeOutLead.Draw()

	// 三段窗口塞不进生命周期时按比例压缩，保持渐变形状
	if total := fadeIn + fadeOut + lead; total > duration {
		k := duration / total
		fadeIn *= k
		fadeOut *= k
		lead *= k
	}
	hold := duration - fadeIn - fadeOut - lead

	seq := gween.NewSequence()
	if fadeIn > 0 {
		seq.Add(gween.New(0, 1, float32(fadeIn), ease.Linear))
	}
	if hold > 0 {
		seq.Add(gween.New(1, 1, float32(hold), ease.Linear))
	}
	if fadeOut > 0 {
		seq.Add(gween.New(1, 0, float32(fadeOut), ease.Linear))
	}
	if !seq.HasTweens() {
		seq.Add(gween.New(1, 1, float32(duration), ease.Linear))
	}
	return seq
}
