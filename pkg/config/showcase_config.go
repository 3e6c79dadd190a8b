package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/driftfx/internal/effect"
	"github.com/gonewx/driftfx/pkg/embedded"
)

// 应用窗口的逻辑尺寸
// 展示页按该尺寸排版，ebiten 负责缩放到实际窗口
const (
	GameWindowWidth  = 800
	GameWindowHeight = 600
)

// ShowcaseConfig 展示页配置
// 定义滚动页面上的面板序列：每个面板承载一个效果实例和可选装饰
type ShowcaseConfig struct {
	Title  string        `yaml:"title"`  // 页面标题（窗口标题栏）
	Panels []PanelConfig `yaml:"panels"` // 面板列表，按滚动顺序排列
}

// PanelConfig 单个展示面板配置
type PanelConfig struct {
	ID     string `yaml:"id"`     // 面板ID，页面内唯一
	Title  string `yaml:"title"`  // 面板标题（进入视口时逐字显示），可为空
	Effect string `yaml:"effect"` // 效果库中的效果名，可为空（纯装饰面板）
	Height int    `yaml:"height"` // 面板高度（像素），默认 360

	// 装饰元素
	Underline bool   `yaml:"underline"` // 标题下方的描边动画
	Orbit     bool   `yaml:"orbit"`     // 面板中心的环绕光点
	Accent    string `yaml:"accent"`    // 装饰颜色 #rrggbb，默认暖白
}

// 面板高度的合法范围与默认值
const (
	panelDefaultHeight = 360
	panelMinHeight     = 160
	panelMaxHeight     = 2000
)

// defaultAccent 装饰元素的默认颜色
const defaultAccent = "#ffd27f"

// LoadShowcaseConfig 从嵌入资源加载展示页配置
//
// 参数：
//   - path: 嵌入资源路径，如 "data/showcase.yaml"
//
// 返回：
//   - *ShowcaseConfig: 解析后的配置
//   - error: 读取或解析失败时返回错误
func LoadShowcaseConfig(path string) (*ShowcaseConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read showcase config %s: %w", path, err)
	}
	cfg, err := ParseShowcaseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid showcase config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseShowcaseConfig 解析展示页配置并应用默认值
func ParseShowcaseConfig(data []byte) (*ShowcaseConfig, error) {
	var cfg ShowcaseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse showcase config YAML: %w", err)
	}

	applyShowcaseDefaults(&cfg)

	if err := validateShowcaseConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyShowcaseDefaults 为缺失的可选字段设置默认值
func applyShowcaseDefaults(cfg *ShowcaseConfig) {
	if cfg.Title == "" {
		cfg.Title = "DriftFX"
	}
	for i := range cfg.Panels {
		p := &cfg.Panels[i]
		if p.Height == 0 {
			p.Height = panelDefaultHeight
		}
		if p.Accent == "" {
			p.Accent = defaultAccent
		}
	}
}

// validateShowcaseConfig 验证必填字段和取值范围
func validateShowcaseConfig(cfg *ShowcaseConfig) error {
	if len(cfg.Panels) == 0 {
		return fmt.Errorf("showcase config has no panels")
	}

	seen := make(map[string]bool, len(cfg.Panels))
	for i, p := range cfg.Panels {
		if p.ID == "" {
			return fmt.Errorf("panel %d: missing id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("panel %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true

		if p.Height < panelMinHeight || p.Height > panelMaxHeight {
			return fmt.Errorf("panel %q: height %d out of range [%d, %d]",
				p.ID, p.Height, panelMinHeight, panelMaxHeight)
		}
		if _, err := effect.ParseHexColor(p.Accent); err != nil {
			return fmt.Errorf("panel %q: invalid accent: %w", p.ID, err)
		}
	}
	return nil
}

// TotalHeight 返回整个滚动页面的总高度（像素）
func (cfg *ShowcaseConfig) TotalHeight() int {
	total := 0
	for _, p := range cfg.Panels {
		total += p.Height
	}
	return total
}

// MaxScroll 返回滚动偏移的上限
// 页面比窗口矮时不可滚动，返回 0
func (cfg *ShowcaseConfig) MaxScroll() float64 {
	max := float64(cfg.TotalHeight() - GameWindowHeight)
	if max < 0 {
		return 0
	}
	return max
}
