package loader

import (
	"reflect"
	"testing"
)

func envLoader(vars ...string) *EnvLoader {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string { return vars }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := envLoader(
		"BLOCKPAD_LOG_LEVEL=debug",
		"BLOCKPAD_HISTORY=25",
		"BLOCKPAD_SYSTEM_CLIPBOARD=yes",
		`BLOCKPAD_SCRIPTS=["a.lua","b.lua"]`,
		"HOME=/home/me",
	)
	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"history.max_entries", int64(25)},
		{"clipboard.system", true},
		{"plugins.scripts", []any{"a.lua", "b.lua"}},
	}
	for _, tt := range tests {
		got, ok := Get(config, tt.path)
		if !ok || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s = %v (%T), want %v", tt.path, got, got, tt.want)
		}
	}
	if _, ok := config["home"]; ok {
		t.Error("unprefixed variables should be ignored")
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	config, err := envLoader("BLOCKPAD_COMPONENTS_ID_SOURCE=counter", "BLOCKPAD_CUSTOM=x").Load()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := Get(config, "components.id_source"); v != "counter" {
		t.Errorf("components.id_source = %v", v)
	}
	if v, _ := Get(config, "custom"); v != "x" {
		t.Errorf("custom = %v", v)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	tests := []struct {
		env  string
		want string
	}{
		{"BLOCKPAD_HISTORY_MAX_ENTRIES", "history.max_entries"},
		{"BLOCKPAD_LOGGING_LEVEL", "logging.level"},
		{"BLOCKPAD_PLUGINS", "plugins"},
		{"BLOCKPAD_", ""},
	}
	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestEnvLoader_Mapping(t *testing.T) {
	l := NewEnvLoaderWithMapping("APP_", nil)
	l.environ = func() []string { return []string{"APP_DEPTH=3"} }
	l.AddMapping("APP_DEPTH", "history.max_entries")

	config, _ := l.Load()
	if v, _ := Get(config, "history.max_entries"); v != int64(3) {
		t.Errorf("mapped value = %v", v)
	}

	l.RemoveMapping("APP_DEPTH")
	config, _ = l.Load()
	if v, _ := Get(config, "depth"); v != int64(3) {
		t.Errorf("unmapped value = %v", v)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"On", true},
		{"no", false},
		{"1", int64(1)},
		{"0", int64(0)},
		{"-4", int64(-4)},
		{"1.5", 1.5},
		{"2s", "2s"},
		{`{"a":1}`, map[string]any{"a": float64(1)}},
		{"[broken", "[broken"},
		{"hello", "hello"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}
