package game

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/driftfx/internal/effect"
	"github.com/gonewx/driftfx/pkg/embedded"
)

// EffectLibrary 效果库
// 保存展示页可用的全部效果定义（已解析、已校验），按名字检索。
// 单个定义损坏只会被跳过并记录日志，不影响其余效果。
type EffectLibrary struct {
	specs map[string]*effect.Spec
	order []string // 加载顺序，保证遍历稳定
}

// NewEffectLibrary 创建空效果库
func NewEffectLibrary() *EffectLibrary {
	return &EffectLibrary{
		specs: make(map[string]*effect.Spec),
	}
}

// LoadEffectLibrary 从嵌入资源目录加载效果库
//
// 目录下每个 .yaml/.yml 文件可包含多个用 "---" 分隔的效果定义文档。
// 损坏的文档跳过并记录日志；目录不存在或为空不是错误，返回空库。
//
// 参数：
//   - dir: 嵌入资源目录，如 "data/effects"
func LoadEffectLibrary(dir string) (*EffectLibrary, error) {
	lib := NewEffectLibrary()

	entries, err := embedded.ReadDir(dir)
	if err != nil {
		// 目录缺失按空库处理，让调用方决定是否致命
		log.Printf("[EffectLibrary] Warning: cannot read %s: %v (library empty)", dir, err)
		return lib, nil
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		path := dir + "/" + name
		data, err := embedded.ReadFile(path)
		if err != nil {
			log.Printf("[EffectLibrary] Warning: failed to read %s: %v (skipped)", path, err)
			continue
		}

		loaded := lib.AddDocuments(path, data)
		log.Printf("[EffectLibrary] Loaded %d effect(s) from %s", loaded, path)
	}

	return lib, nil
}

// AddDocuments 解析一段多文档 YAML 并把其中合法的效果定义加入库
//
// 每个文档独立校验：解码失败会放弃该数据流的剩余文档（YAML 流
// 无法安全跳过语法错误），校验失败只跳过当前文档。
//
// 参数：
//   - source: 来源描述（日志用，通常是文件路径）
//   - data: 多文档 YAML 内容
//
// 返回：
//   - int: 成功加入库的效果数量
func (lib *EffectLibrary) AddDocuments(source string, data []byte) int {
	loaded := 0
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	for {
		var cfg effect.EffectConfig
		err := decoder.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("[EffectLibrary] Warning: %s: yaml decode failed: %v (remaining documents skipped)", source, err)
			break
		}

		// 文档分隔符之间的空文档直接忽略
		if cfg.Name == "" && cfg.Geometry == "" {
			continue
		}

		if err := lib.add(&cfg); err != nil {
			log.Printf("[EffectLibrary] Warning: %s: %v (document skipped)", source, err)
			continue
		}
		loaded++
	}

	return loaded
}

// add 校验并解析单个效果定义，重名时保留先加载的版本
func (lib *EffectLibrary) add(cfg *effect.EffectConfig) error {
	spec, err := cfg.Resolve()
	if err != nil {
		return err
	}

	if _, exists := lib.specs[spec.Name]; exists {
		return fmt.Errorf("duplicate effect name %q", spec.Name)
	}

	lib.specs[spec.Name] = spec
	lib.order = append(lib.order, spec.Name)
	return nil
}

// Get 按名字查找效果定义
//
// 返回：
//   - *effect.Spec: 效果定义（未找到时为 nil）
//   - bool: 是否找到
func (lib *EffectLibrary) Get(name string) (*effect.Spec, bool) {
	spec, ok := lib.specs[name]
	return spec, ok
}

// Names 返回库中全部效果名（按字典序）
func (lib *EffectLibrary) Names() []string {
	names := make([]string, 0, len(lib.specs))
	for name := range lib.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len 返回库中效果数量
func (lib *EffectLibrary) Len() int {
	return len(lib.specs)
}
