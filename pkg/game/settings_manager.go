package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ShowcaseSettings 全局展示设置
// 设置是全局的，不绑定到特定页面或效果实例
type ShowcaseSettings struct {
	// 粒子设置
	ParticleDensity float64 `yaml:"particleDensity"` // 粒子密度 0.25 ~ 1.0，按比例缩放各效果的容量上限
	ReducedMotion   bool    `yaml:"reducedMotion"`   // 降低动态：密度减半且关闭发光叠加

	// 显示设置
	ScrollSpeed      float64 `yaml:"scrollSpeed"`      // 滚轮滚动速度（像素/格）
	Fullscreen       bool    `yaml:"fullscreen"`       // 启动时是否全屏
	ShowDebugOverlay bool    `yaml:"showDebugOverlay"` // 显示调试信息（实例数 / 活跃粒子数）
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ShowcaseSettings {
	return &ShowcaseSettings{
		ParticleDensity:  1.0,
		ReducedMotion:    false,
		ScrollSpeed:      48,
		Fullscreen:       false,
		ShowDebugOverlay: false,
	}
}

// EffectiveDensity 返回实际生效的密度系数
// 降低动态模式下密度减半
func (s *ShowcaseSettings) EffectiveDensity() float64 {
	d := s.ParticleDensity
	if s.ReducedMotion {
		d *= 0.5
	}
	return d
}

// SettingsManager 设置管理器
// 负责展示设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager    // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ShowcaseSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "showcase"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 如果加载设置失败返回错误（不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	// 检查设置文件是否存在
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		// 文件不存在，使用默认设置
		sm.settings = DefaultSettings()
		return nil
	}

	// 从 gdata 加载数据
	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		// 文件存在但加载失败，使用默认设置
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 反序列化 YAML 数据
	var loaded ShowcaseSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	sm.normalize()
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *SettingsManager) Save() error {
	// 降级模式：无法持久化，但不报错
	if sm.gdataManager == nil {
		return nil
	}

	// 序列化设置为 YAML
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	// 保存到 gdata
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
//
// 返回：
//   - *ShowcaseSettings: 当前设置实例
func (sm *SettingsManager) GetSettings() *ShowcaseSettings {
	return sm.settings
}

// SetParticleDensity 设置粒子密度
//
// 密度值会被限制在 0.25 ~ 1.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 参数：
//   - density: 粒子密度 (0.25 ~ 1.0)
func (sm *SettingsManager) SetParticleDensity(density float64) {
	sm.settings.ParticleDensity = clampDensity(density)
}

// SetReducedMotion 设置降低动态开关
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetReducedMotion(enabled bool) {
	sm.settings.ReducedMotion = enabled
}

// SetScrollSpeed 设置滚动速度
//
// 速度值会被限制在 8 ~ 200 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetScrollSpeed(speed float64) {
	if speed < 8 {
		speed = 8
	}
	if speed > 200 {
		speed = 200
	}
	sm.settings.ScrollSpeed = speed
}

// SetFullscreen 设置全屏模式
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowDebugOverlay 设置调试信息开关
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetShowDebugOverlay(enabled bool) {
	sm.settings.ShowDebugOverlay = enabled
}

// normalize 把加载进来的越界值拉回合法范围
// 旧版本存档或手工编辑可能带来非法数值
func (sm *SettingsManager) normalize() {
	sm.settings.ParticleDensity = clampDensity(sm.settings.ParticleDensity)
	if sm.settings.ScrollSpeed <= 0 {
		sm.settings.ScrollSpeed = DefaultSettings().ScrollSpeed
	}
}

// clampDensity 将密度值限制在 0.25 ~ 1.0 范围内
func clampDensity(density float64) float64 {
	if density < 0.25 {
		return 0.25
	}
	if density > 1.0 {
		return 1.0
	}
	return density
}
