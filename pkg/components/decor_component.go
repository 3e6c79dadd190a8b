package components

import (
	"image/color"

	"github.com/tanema/gween"

	"github.com/gonewx/driftfx/pkg/types"
)

// RevealComponent 标题/说明文字的进场动画（逐段淡入上滑）
// Segments 由拆分能力提供：支持逐字拆分时一段一个字符簇，
// 降级实现则整行作为单独一段。
//
// This is a pure data component following ECS principles - it contains no methods.
type RevealComponent struct {
	Text     string
	Segments []string // 动画单元（字符簇或整行）

	// Layout anchor (逻辑画布坐标，左上)
	X, Y     float64
	FontSize float64
	Color    color.RGBA

	// Timing (秒)
	SegmentDelay float64 // 相邻段起始间隔
	Duration     float64 // 单段淡入时长
	Age          float64

	SlidePx float64 // 上滑距离
	Done    bool    // 所有段都到位后置位

	// OnDone fires once when the last segment lands.
	OnDone func()
}

// StrokeComponent 折线描边动画：按长度比例逐段显示
//
// This is a pure data component following ECS principles - it contains no methods.
type StrokeComponent struct {
	Points   []types.Point // polyline in logical canvas coords
	TotalLen float64       // cached polyline length

	Progress *gween.Tween // revealed length fraction 0→1
	Fraction float64      // current revealed fraction

	Width float32
	Color color.RGBA
	Done  bool

	// OnDone fires once when the stroke is fully revealed.
	OnDone func()
}

// OrbitComponent 环绕装饰：N 个点绕中心旋转，半径缓慢脉动
//
// This is a pure data component following ECS principles - it contains no methods.
type OrbitComponent struct {
	CenterX, CenterY float64
	Radius           float64
	DotCount         int
	DotRadius        float64

	AngularVel float64 // degrees per second
	Phase      float64 // current base angle in degrees

	PulseEnv   *gween.Sequence // radius pulse, reset on completion (循环)
	PulseScale float64         // current pulse multiplier

	Color    color.RGBA
	Additive bool
}
