package types

import "fmt"

// ShapeKind 粒子外形的封闭变体集合
// 新增外形需要同时在 effects 包的构造表里注册对应的轮廓构造器
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeSquare
	ShapeStar
	ShapePolygon
)

// shapeNames 配置名 → 变体，ParseShapeKind 的查表依据
var shapeNames = map[string]ShapeKind{
	"circle":  ShapeCircle,
	"square":  ShapeSquare,
	"star":    ShapeStar,
	"polygon": ShapePolygon,
}

// ParseShapeKind resolves a shape name from an effect definition.
// Unknown names return an error listing the valid kinds.
func ParseShapeKind(name string) (ShapeKind, error) {
	kind, ok := shapeNames[name]
	if !ok {
		return ShapeCircle, fmt.Errorf("unknown shape %q (valid: circle, square, star, polygon)", name)
	}
	return kind, nil
}

// String returns the configuration name of the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	case ShapeStar:
		return "star"
	case ShapePolygon:
		return "polygon"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}
