package game

import (
	"testing"
)

const validEffectDoc = `
name: sparkle
geometry: fountain
initialBurst: 4
maxParticles: 20
originX: "0.5"
originY: "1"
angle: "[80 100]"
distance: "[40 80]"
duration: "[1 2]"
shapes: "circle:9 star:1"
size: "[2 5]"
opacityPolicy: colorTable
colors: "#ffd27f@0.9:3 #ffffff@0.7:1"
`

const secondEffectDoc = `
name: beam-rise
geometry: beam
maxParticles: 12
spawnInterval: "[120 200]"
originX: "[0.1 0.9]"
originY: "1"
angle: "90"
distance: "[100 160]"
duration: "[2 3]"
shapes: "square:1"
size: "[3 6]"
opacityPolicy: sizeLinear
opacityRange: "[0.2 0.9]"
`

// TestAddDocuments 测试多文档解析
func TestAddDocuments(t *testing.T) {
	lib := NewEffectLibrary()

	doc := validEffectDoc + "\n---\n" + secondEffectDoc
	loaded := lib.AddDocuments("test.yaml", []byte(doc))

	if loaded != 2 {
		t.Fatalf("loaded: got %d, want 2", loaded)
	}
	if lib.Len() != 2 {
		t.Errorf("Len(): got %d, want 2", lib.Len())
	}

	spec, ok := lib.Get("sparkle")
	if !ok {
		t.Fatal("Get(sparkle) not found")
	}
	if spec.Geometry != "fountain" {
		t.Errorf("sparkle geometry: got %q, want fountain", spec.Geometry)
	}
	if spec.InitialBurst != 4 {
		t.Errorf("sparkle initialBurst: got %d, want 4", spec.InitialBurst)
	}

	spec, ok = lib.Get("beam-rise")
	if !ok {
		t.Fatal("Get(beam-rise) not found")
	}
	if spec.MaxParticles != 12 {
		t.Errorf("beam-rise maxParticles: got %d, want 12", spec.MaxParticles)
	}
}

// TestAddDocumentsSkipsInvalid 损坏文档被跳过，后续文档照常加载
func TestAddDocumentsSkipsInvalid(t *testing.T) {
	lib := NewEffectLibrary()

	invalidDoc := `
name: broken
geometry: spiral
maxParticles: 10
shapes: "circle:1"
duration: "[1]"
distance: "[10]"
opacityPolicy: colorTable
colors: "#ffffff@1:1"
`
	doc := invalidDoc + "\n---\n" + validEffectDoc
	loaded := lib.AddDocuments("test.yaml", []byte(doc))

	if loaded != 1 {
		t.Fatalf("loaded: got %d, want 1", loaded)
	}
	if _, ok := lib.Get("broken"); ok {
		t.Error("broken effect should not be in library")
	}
	if _, ok := lib.Get("sparkle"); !ok {
		t.Error("sparkle should survive a broken sibling document")
	}
}

// TestAddDocumentsSyntaxErrorStopsStream YAML 语法错误放弃该流的剩余文档
func TestAddDocumentsSyntaxErrorStopsStream(t *testing.T) {
	lib := NewEffectLibrary()

	doc := "{{{ not yaml\n---\n" + validEffectDoc
	loaded := lib.AddDocuments("test.yaml", []byte(doc))

	if loaded != 0 {
		t.Errorf("loaded: got %d, want 0", loaded)
	}
}

// TestAddDocumentsDuplicateName 重名定义保留先加载的版本
func TestAddDocumentsDuplicateName(t *testing.T) {
	lib := NewEffectLibrary()

	duplicate := `
name: sparkle
geometry: beam
maxParticles: 99
angle: "0"
distance: "[5]"
duration: "[1]"
shapes: "circle:1"
size: "[1]"
opacityPolicy: colorTable
colors: "#000000@1:1"
`
	doc := validEffectDoc + "\n---\n" + duplicate
	loaded := lib.AddDocuments("test.yaml", []byte(doc))

	if loaded != 1 {
		t.Fatalf("loaded: got %d, want 1", loaded)
	}

	spec, ok := lib.Get("sparkle")
	if !ok {
		t.Fatal("Get(sparkle) not found")
	}
	if spec.MaxParticles != 20 {
		t.Errorf("duplicate should keep first version: MaxParticles got %d, want 20", spec.MaxParticles)
	}
}

// TestAddDocumentsEmptyDocsIgnored 分隔符之间的空文档被静默忽略
func TestAddDocumentsEmptyDocsIgnored(t *testing.T) {
	lib := NewEffectLibrary()

	doc := "---\n" + validEffectDoc + "\n---\n---\n"
	loaded := lib.AddDocuments("test.yaml", []byte(doc))

	if loaded != 1 {
		t.Errorf("loaded: got %d, want 1", loaded)
	}
}

// TestNames 返回按字典序的效果名
func TestNames(t *testing.T) {
	lib := NewEffectLibrary()
	lib.AddDocuments("test.yaml", []byte(validEffectDoc+"\n---\n"+secondEffectDoc))

	names := lib.Names()
	if len(names) != 2 {
		t.Fatalf("Names(): got %d entries, want 2", len(names))
	}
	if names[0] != "beam-rise" || names[1] != "sparkle" {
		t.Errorf("Names(): got %v, want [beam-rise sparkle]", names)
	}
}

// TestGetMissing 未知名字返回未找到
func TestGetMissing(t *testing.T) {
	lib := NewEffectLibrary()
	if _, ok := lib.Get("nope"); ok {
		t.Error("Get on empty library should report not found")
	}
}
