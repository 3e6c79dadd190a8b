package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdata 在临时 HOME 下创建 gdata manager
func newTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}

	// 验证粒子密度默认值
	if settings.ParticleDensity != 1.0 {
		t.Errorf("ParticleDensity: got %v, want 1.0", settings.ParticleDensity)
	}

	// 验证降低动态默认值
	if settings.ReducedMotion {
		t.Error("ReducedMotion: got true, want false")
	}

	// 验证滚动速度默认值
	if settings.ScrollSpeed != 48 {
		t.Errorf("ScrollSpeed: got %v, want 48", settings.ScrollSpeed)
	}

	// 验证全屏模式默认值
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}

	// 验证调试信息默认值
	if settings.ShowDebugOverlay {
		t.Error("ShowDebugOverlay: got true, want false")
	}
}

// TestEffectiveDensity 测试降低动态模式下密度减半
func TestEffectiveDensity(t *testing.T) {
	s := &ShowcaseSettings{ParticleDensity: 0.8}

	if got := s.EffectiveDensity(); got != 0.8 {
		t.Errorf("EffectiveDensity: got %v, want 0.8", got)
	}

	s.ReducedMotion = true
	if got := s.EffectiveDensity(); got != 0.4 {
		t.Errorf("EffectiveDensity with reduced motion: got %v, want 0.4", got)
	}
}

// TestNewSettingsManager 测试正常初始化 SettingsManager
func TestNewSettingsManager(t *testing.T) {
	gdataManager := newTestGdata(t, "test_settings")

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	if sm == nil {
		t.Fatal("NewSettingsManager() returned nil")
	}

	// 验证初始化后使用默认设置
	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil after initialization")
	}

	if settings.ParticleDensity != 1.0 {
		t.Errorf("Initial ParticleDensity: got %v, want 1.0", settings.ParticleDensity)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	if sm == nil {
		t.Fatal("NewSettingsManager(nil) returned nil")
	}

	// 验证使用默认设置
	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}

	if settings.ScrollSpeed != 48 {
		t.Errorf("Degraded mode ScrollSpeed: got %v, want 48", settings.ScrollSpeed)
	}

	// 降级模式下 Save 不报错
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode error: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := newTestGdata(t, "test_settings_load_save")

	// 创建设置管理器并修改设置
	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetParticleDensity(0.5)
	sm1.SetReducedMotion(true)
	sm1.SetScrollSpeed(96)
	sm1.SetFullscreen(true)
	sm1.SetShowDebugOverlay(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 第二个管理器从同一存储加载
	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("Second NewSettingsManager() error: %v", err)
	}

	settings := sm2.GetSettings()
	if settings.ParticleDensity != 0.5 {
		t.Errorf("Loaded ParticleDensity: got %v, want 0.5", settings.ParticleDensity)
	}
	if !settings.ReducedMotion {
		t.Error("Loaded ReducedMotion: got false, want true")
	}
	if settings.ScrollSpeed != 96 {
		t.Errorf("Loaded ScrollSpeed: got %v, want 96", settings.ScrollSpeed)
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if !settings.ShowDebugOverlay {
		t.Error("Loaded ShowDebugOverlay: got false, want true")
	}
}

// TestSetParticleDensityClamping 测试密度值范围限制
func TestSetParticleDensityClamping(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input float64
		want  float64
	}{
		{0.5, 0.5},
		{1.0, 1.0},
		{0.25, 0.25},
		{0.1, 0.25},  // 低于下限
		{-1.0, 0.25}, // 负值
		{1.5, 1.0},   // 超过上限
	}

	for _, tt := range tests {
		sm.SetParticleDensity(tt.input)
		if got := sm.GetSettings().ParticleDensity; got != tt.want {
			t.Errorf("SetParticleDensity(%v): got %v, want %v", tt.input, got, tt.want)
		}
	}
}

// TestSetScrollSpeedClamping 测试滚动速度范围限制
func TestSetScrollSpeedClamping(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input float64
		want  float64
	}{
		{48, 48},
		{4, 8},     // 低于下限
		{500, 200}, // 超过上限
	}

	for _, tt := range tests {
		sm.SetScrollSpeed(tt.input)
		if got := sm.GetSettings().ScrollSpeed; got != tt.want {
			t.Errorf("SetScrollSpeed(%v): got %v, want %v", tt.input, got, tt.want)
		}
	}
}

// TestSettingsNormalizeOnLoad 测试加载时对越界存档值的修正
func TestSettingsNormalizeOnLoad(t *testing.T) {
	gdataManager := newTestGdata(t, "test_settings_normalize")

	// 直接写入带非法值的 YAML（模拟手工编辑过的存档）
	raw := []byte("particleDensity: 7.5\nscrollSpeed: -3\n")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	settings := sm.GetSettings()
	if settings.ParticleDensity != 1.0 {
		t.Errorf("Normalized ParticleDensity: got %v, want 1.0", settings.ParticleDensity)
	}
	if settings.ScrollSpeed != 48 {
		t.Errorf("Normalized ScrollSpeed: got %v, want 48", settings.ScrollSpeed)
	}
}

// TestSettingsLoadCorruptData 测试损坏数据回退默认设置
func TestSettingsLoadCorruptData(t *testing.T) {
	gdataManager := newTestGdata(t, "test_settings_corrupt")

	// 写入非法 YAML
	raw := []byte("{{{ not yaml")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	// 构造函数吞掉加载错误，回退默认值
	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	settings := sm.GetSettings()
	if settings.ParticleDensity != 1.0 {
		t.Errorf("Fallback ParticleDensity: got %v, want 1.0", settings.ParticleDensity)
	}
}
