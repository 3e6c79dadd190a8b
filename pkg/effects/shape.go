// Package effects implements the particle lifecycle managers that drive the
// decorative effects: weighted particle factories, spawn geometries, motion
// profiles and the owner objects that tie one effect instance to one host
// region on the stage.
package effects

import (
	"math"

	"github.com/gonewx/driftfx/pkg/types"
)

// shapeBuilder constructs the outline polygon for one shape variant.
// Outlines are centred on the origin with "size" as the half-extent /
// circumradius; rotation is applied at render time.
// 圆形返回 nil：渲染器走专用圆形绘制路径。
type shapeBuilder func(size float64) []types.Point

// shapeBuilders is the closed variant table. Render and factory code select
// constructors by table lookup; adding a shape means adding exactly one entry
// here plus its name in types.ParseShapeKind.
var shapeBuilders = map[types.ShapeKind]shapeBuilder{
	types.ShapeCircle:  buildCircleOutline,
	types.ShapeSquare:  buildSquareOutline,
	types.ShapeStar:    buildStarOutline,
	types.ShapePolygon: buildPolygonOutline,
}

// ShapeOutline returns the outline for kind at the given size, or nil for
// circles (drawn natively). Unknown kinds also return nil; they cannot occur
// for particles built through the factory, which validates shape names.
func ShapeOutline(kind types.ShapeKind, size float64) []types.Point {
	builder, ok := shapeBuilders[kind]
	if !ok {
		return nil
	}
	return builder(size)
}

func buildCircleOutline(size float64) []types.Point {
	return nil // 圆形由 vector.DrawFilledCircle 直接绘制
}

func buildSquareOutline(size float64) []types.Point {
	return []types.Point{
		{X: -size, Y: -size},
		{X: size, Y: -size},
		{X: size, Y: size},
		{X: -size, Y: size},
	}
}

// buildStarOutline 五角星：外顶点半径 size，内顶点半径 size×0.45，尖朝上
func buildStarOutline(size float64) []types.Point {
	const points = 5
	inner := size * 0.45
	outline := make([]types.Point, 0, points*2)
	for i := 0; i < points*2; i++ {
		r := size
		if i%2 == 1 {
			r = inner
		}
		// 从正上方开始（画布Y轴向下，-90°指向上方）
		angle := -math.Pi/2 + float64(i)*math.Pi/float64(points)
		outline = append(outline, types.Point{
			X: r * math.Cos(angle),
			Y: r * math.Sin(angle),
		})
	}
	return outline
}

// buildPolygonOutline 正六边形，平顶朝上
func buildPolygonOutline(size float64) []types.Point {
	const sides = 6
	outline := make([]types.Point, 0, sides)
	for i := 0; i < sides; i++ {
		angle := -math.Pi/2 + float64(i)*2*math.Pi/float64(sides)
		outline = append(outline, types.Point{
			X: size * math.Cos(angle),
			Y: size * math.Sin(angle),
		})
	}
	return outline
}

// RotateOutline returns outline rotated by the given angle in degrees,
// translated to (cx, cy). A nil outline stays nil.
func RotateOutline(outline []types.Point, angleDeg, cx, cy float64) []types.Point {
	if outline == nil {
		return nil
	}
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	rotated := make([]types.Point, len(outline))
	for i, p := range outline {
		rotated[i] = types.Point{
			X: cx + p.X*cos - p.Y*sin,
			Y: cy + p.X*sin + p.Y*cos,
		}
	}
	return rotated
}
