package utils

// Debouncer 对高频触发的事件做去抖：只有在最后一次触发之后
// 经过设定的静默窗口，动作才会真正执行一次
//
// 典型用途：窗口尺寸变化期间会连续收到多次尺寸事件，
// 去抖后只在用户停止拖拽约 100ms 后重排一次布局
type Debouncer struct {
	delay   float64 // 静默窗口（秒）
	pending bool
	elapsed float64
}

// NewDebouncer 创建去抖器
// 参数:
//   - delay: 静默窗口秒数（<=0 时按 0.1s 处理）
func NewDebouncer(delay float64) *Debouncer {
	if delay <= 0 {
		delay = 0.1
	}
	return &Debouncer{delay: delay}
}

// Trigger 记录一次触发，重置静默计时
func (d *Debouncer) Trigger() {
	d.pending = true
	d.elapsed = 0
}

// Update 推进计时；静默窗口耗尽时返回 true（恰好一次）
func (d *Debouncer) Update(dt float64) bool {
	if !d.pending {
		return false
	}
	d.elapsed += dt
	if d.elapsed >= d.delay {
		d.pending = false
		return true
	}
	return false
}

// Pending 是否还有未执行的待去抖动作
func (d *Debouncer) Pending() bool {
	return d.pending
}
