package config

import (
	"strings"
	"testing"
)

const validShowcaseYAML = `
title: DriftFX Demo
panels:
  - id: intro
    title: 漂移粒子
    height: 420
    underline: true
  - id: sparkle
    title: Sparkle
    effect: sparkle
    orbit: true
    accent: "#9fd8ff"
  - id: beams
    effect: beam-rise
`

// TestParseShowcaseConfig 测试正常解析
func TestParseShowcaseConfig(t *testing.T) {
	cfg, err := ParseShowcaseConfig([]byte(validShowcaseYAML))
	if err != nil {
		t.Fatalf("ParseShowcaseConfig() error: %v", err)
	}

	if cfg.Title != "DriftFX Demo" {
		t.Errorf("Title: got %q, want %q", cfg.Title, "DriftFX Demo")
	}
	if len(cfg.Panels) != 3 {
		t.Fatalf("Panels: got %d, want 3", len(cfg.Panels))
	}

	// 显式高度保留
	if cfg.Panels[0].Height != 420 {
		t.Errorf("intro height: got %d, want 420", cfg.Panels[0].Height)
	}
	// 默认高度
	if cfg.Panels[1].Height != panelDefaultHeight {
		t.Errorf("sparkle height: got %d, want %d", cfg.Panels[1].Height, panelDefaultHeight)
	}
	// 显式颜色保留
	if cfg.Panels[1].Accent != "#9fd8ff" {
		t.Errorf("sparkle accent: got %q, want #9fd8ff", cfg.Panels[1].Accent)
	}
	// 默认颜色
	if cfg.Panels[0].Accent != defaultAccent {
		t.Errorf("intro accent: got %q, want %q", cfg.Panels[0].Accent, defaultAccent)
	}
	// 纯装饰面板允许 effect 为空
	if cfg.Panels[0].Effect != "" {
		t.Errorf("intro effect: got %q, want empty", cfg.Panels[0].Effect)
	}
}

// TestParseShowcaseConfigDefaultTitle 页面标题默认值
func TestParseShowcaseConfigDefaultTitle(t *testing.T) {
	yaml := `
panels:
  - id: only
`
	cfg, err := ParseShowcaseConfig([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseShowcaseConfig() error: %v", err)
	}
	if cfg.Title != "DriftFX" {
		t.Errorf("Title: got %q, want DriftFX", cfg.Title)
	}
}

// TestParseShowcaseConfigErrors 测试各类校验失败
func TestParseShowcaseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "没有面板",
			yaml:    "title: x\npanels: []\n",
			wantErr: "no panels",
		},
		{
			name:    "缺少面板ID",
			yaml:    "panels:\n  - title: x\n",
			wantErr: "missing id",
		},
		{
			name:    "重复面板ID",
			yaml:    "panels:\n  - id: a\n  - id: a\n",
			wantErr: "duplicate id",
		},
		{
			name:    "高度越界",
			yaml:    "panels:\n  - id: a\n    height: 50\n",
			wantErr: "out of range",
		},
		{
			name:    "非法装饰色",
			yaml:    "panels:\n  - id: a\n    accent: \"red\"\n",
			wantErr: "invalid accent",
		},
		{
			name:    "非法 YAML",
			yaml:    "{{{ nope",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShowcaseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestTotalHeightAndMaxScroll 页面总高与滚动上限
func TestTotalHeightAndMaxScroll(t *testing.T) {
	cfg, err := ParseShowcaseConfig([]byte(validShowcaseYAML))
	if err != nil {
		t.Fatalf("ParseShowcaseConfig() error: %v", err)
	}

	want := 420 + panelDefaultHeight + panelDefaultHeight
	if got := cfg.TotalHeight(); got != want {
		t.Errorf("TotalHeight: got %d, want %d", got, want)
	}

	wantScroll := float64(want - GameWindowHeight)
	if got := cfg.MaxScroll(); got != wantScroll {
		t.Errorf("MaxScroll: got %v, want %v", got, wantScroll)
	}
}

// TestMaxScrollShortPage 页面比窗口矮时不可滚动
func TestMaxScrollShortPage(t *testing.T) {
	yaml := `
panels:
  - id: only
    height: 200
`
	cfg, err := ParseShowcaseConfig([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseShowcaseConfig() error: %v", err)
	}
	if got := cfg.MaxScroll(); got != 0 {
		t.Errorf("MaxScroll: got %v, want 0", got)
	}
}
