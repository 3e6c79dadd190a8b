// Package types 定义共享的基础类型
package types

// Point 逻辑画布坐标系中的一个点（Y轴向下为正）
type Point struct {
	X, Y float64
}

// Rect 逻辑画布坐标系中的矩形区域
// 效果实例挂载在区域上；窗口尺寸变化后由布局重算统一更新。
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否落在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// At 返回矩形内归一化坐标 (nx, ny ∈ [0,1]) 对应的画布坐标
func (r Rect) At(nx, ny float64) (float64, float64) {
	return r.X + nx*r.W, r.Y + ny*r.H
}

// Center 返回矩形中心点
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}
