package components

// PositionComponent 逻辑画布坐标系中的实体位置
//
// 出生时由生成步骤写入，之后只被粒子系统的运动步骤修改。
// This is a pure data component following ECS principles - it contains no methods.
type PositionComponent struct {
	X float64 // 画布 X 坐标（逻辑像素）
	Y float64 // 画布 Y 坐标（逻辑像素，向下为正）
}
