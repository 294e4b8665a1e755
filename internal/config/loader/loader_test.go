package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[history]
max_entries = 50

[logging]
level = "debug"

[keymap]
"Ctrl+H" = "heading1"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, ok := Get(config, "history.max_entries"); !ok || v != int64(50) {
		t.Errorf("history.max_entries = %v (%T), want 50", v, v)
	}
	if v, ok := Get(config, "logging.level"); !ok || v != "debug" {
		t.Errorf("logging.level = %v", v)
	}
	if v, ok := Get(config, "keymap"); !ok {
		t.Error("keymap missing")
	} else if km := v.(map[string]any); km["Ctrl+H"] != "heading1" {
		t.Errorf("keymap = %v", km)
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/none.toml").Load()
	if err != nil || config != nil {
		t.Errorf("missing file = %v, %v; want nil, nil", config, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[history]\nmax_entries = = 3\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line == 0 {
		t.Error("Line should be reported")
	}
	if !strings.Contains(perr.Error(), "/bad.toml") {
		t.Errorf("Error() = %q", perr.Error())
	}
}

func TestTOMLLoader_Includes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/cfg/base.toml", `
[logging]
level = "warn"
file = "/tmp/base.log"
`)
	memfs.AddFile("/cfg/config.toml", `
"@include" = "base.toml"

[logging]
level = "debug"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/cfg/config.toml").Load()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := Get(config, "logging.level"); v != "debug" {
		t.Errorf("including file should win, level = %v", v)
	}
	if v, _ := Get(config, "logging.file"); v != "/tmp/base.log" {
		t.Errorf("included value lost, file = %v", v)
	}
	if _, ok := config[IncludeKey]; ok {
		t.Error("include key should be removed")
	}
}

func TestTOMLLoader_IncludeCycle(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `"@include" = "b.toml"`)
	memfs.AddFile("/b.toml", `"@include" = "a.toml"`)

	_, err := NewTOMLLoaderWithFS(memfs, "/a.toml").Load()
	if !errors.Is(err, ErrIncludeDepthExceeded) {
		t.Errorf("error = %v, want ErrIncludeDepthExceeded", err)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
history:
  max_entries: 20
plugins:
  scripts:
    - one.lua
    - two.lua
mentions:
  - id: "1"
    label: John Doe
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/config.yaml").Load()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := Get(config, "history.max_entries"); v != 20 {
		t.Errorf("max_entries = %v (%T)", v, v)
	}
	if v, _ := Get(config, "plugins.scripts"); !reflect.DeepEqual(v, []any{"one.lua", "two.lua"}) {
		t.Errorf("scripts = %v", v)
	}
	if v, _ := Get(config, "mentions"); len(v.([]any)) != 1 {
		t.Errorf("mentions = %v", v)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "history:\n  max_entries: [1\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yaml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}

func TestYAMLLoader_Empty(t *testing.T) {
	config, err := NewYAMLLoader("").LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("empty document = %v", config)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want any
		err  bool
	}{
		{"a.toml", &TOMLLoader{}, false},
		{"a.TOML", &TOMLLoader{}, false},
		{"a.yaml", &YAMLLoader{}, false},
		{"a.yml", &YAMLLoader{}, false},
		{"a.json", nil, true},
		{"noext", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			l, err := ForPath(nil, tt.path)
			if tt.err {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if reflect.TypeOf(l) != reflect.TypeOf(tt.want) {
				t.Errorf("ForPath(%q) = %T", tt.path, l)
			}
		})
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"history": map[string]any{"max_entries": 100},
		"logging": map[string]any{"level": "info", "file": "a.log"},
	}
	src := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"plugins": map[string]any{"scripts": []any{"x.lua"}},
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"history": map[string]any{"max_entries": 100},
		"logging": map[string]any{"level": "debug", "file": "a.log"},
		"plugins": map[string]any{"scripts": []any{"x.lua"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge = %v, want %v", got, want)
	}

	if got := DeepMerge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v", got)
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"plugins": map[string]any{"scripts": []any{"a.lua"}},
	}
	c := Clone(src)
	c["plugins"].(map[string]any)["scripts"].([]any)[0] = "changed"
	if v, _ := Get(src, "plugins.scripts"); v.([]any)[0] != "a.lua" {
		t.Error("Clone shares nested slices")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
