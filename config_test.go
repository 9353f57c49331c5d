package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
glyphs = "ascii"
max_history = 50
axis_lock_threshold = 4
default_tool = "Box"
confirmations = false
`)
	config, err := parseConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	if config.GlyphSet() != ASCIIGlyphs {
		t.Errorf("glyphs = %s", config.GlyphSet().Name)
	}
	if config.MaxHistory != 50 || config.AxisLockThreshold != 4 {
		t.Errorf("limits = %d/%d", config.MaxHistory, config.AxisLockThreshold)
	}
	if config.Tool() != ToolBox {
		t.Errorf("tool = %s", config.Tool())
	}
	if config.Confirmations {
		t.Error("confirmations should be off")
	}
}

func TestParseConfigDefaults(t *testing.T) {
	config, err := parseConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := defaultConfig()
	if *config != *want {
		t.Errorf("empty config = %+v, want %+v", config, want)
	}
	if config.GlyphSet() != UnicodeGlyphs || config.Tool() != ToolLine {
		t.Error("defaults should be unicode glyphs and the line tool")
	}

	config, err = parseConfig([]byte("axis_lock_threshold = 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if config.AxisLockThreshold != defaultAxisLockThreshold {
		t.Errorf("threshold = %d", config.AxisLockThreshold)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "glyphs = \n"},
		{"glyphs", "glyphs = \"emoji\"\n"},
		{"tool", "default_tool = \"spray\"\n"},
		{"history", "max_history = -1\n"},
		{"type", "max_history = \"lots\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseConfig([]byte(tt.data)); err == nil {
				t.Errorf("parseConfig(%q) succeeded", tt.data)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	config, err := loadConfigFile(filepath.Join(dir, "absent.toml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if *config != *defaultConfig() {
		t.Errorf("missing file config = %+v", config)
	}

	path := filepath.Join(dir, "sketch.toml")
	content := "save_directory = \"" + filepath.ToSlash(filepath.Join(dir, "out")) + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	config, err = loadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.SaveDirectory != filepath.Join(dir, "out") {
		t.Errorf("save_directory = %q", config.SaveDirectory)
	}
}

func TestGetSavePath(t *testing.T) {
	dir := t.TempDir()
	config := &Config{SaveDirectory: filepath.Join(dir, "saves")}
	abs := filepath.Join(dir, "elsewhere.txt")
	tests := []struct {
		in, want string
	}{
		{"diagram.txt", filepath.Join(dir, "saves", "diagram.txt")},
		{abs, abs},
		{filepath.Join("sub", "x.txt"), filepath.Join("sub", "x.txt")},
	}
	for _, tt := range tests {
		if got := config.GetSavePath(tt.in); got != tt.want {
			t.Errorf("GetSavePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if fi, err := os.Stat(config.SaveDirectory); err != nil || !fi.IsDir() {
		t.Error("save directory not created")
	}
	if got := (&Config{}).GetSavePath("a.txt"); got != "a.txt" {
		t.Errorf("no save directory: %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/notes"); got != filepath.Join(home, "notes") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome(""); got != "" {
		t.Errorf("expandHome(\"\") = %q", got)
	}
}
