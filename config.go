package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const configFileName = ".sketchgrid.toml"

type Config struct {
	SaveDirectory     string `toml:"save_directory"`
	Glyphs            string `toml:"glyphs"`
	MaxHistory        int    `toml:"max_history"`
	AxisLockThreshold int    `toml:"axis_lock_threshold"`
	DefaultTool       string `toml:"default_tool"`
	Confirmations     bool   `toml:"confirmations"`
	LogFile           string `toml:"log_file"`
}

func defaultConfig() *Config {
	return &Config{
		Glyphs:            "unicode",
		AxisLockThreshold: defaultAxisLockThreshold,
		DefaultTool:       ToolLine.String(),
		Confirmations:     true,
	}
}

func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// loadConfig reads the user's config file. A missing file gives the defaults;
// a malformed one is logged and also gives the defaults.
func loadConfig() *Config {
	path, err := configPath()
	if err != nil {
		return defaultConfig()
	}
	config, err := loadConfigFile(path)
	if err != nil {
		log.Printf("config: %v", err)
		return defaultConfig()
	}
	return config
}

func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := GlyphSetByName(config.Glyphs); err != nil {
		return nil, err
	}
	if _, ok := parseTool(strings.ToLower(config.DefaultTool)); !ok {
		return nil, fmt.Errorf("unknown default_tool %q", config.DefaultTool)
	}
	if config.MaxHistory < 0 {
		return nil, fmt.Errorf("max_history must not be negative, got %d", config.MaxHistory)
	}
	if config.AxisLockThreshold < 1 {
		config.AxisLockThreshold = defaultAxisLockThreshold
	}
	config.SaveDirectory = expandHome(config.SaveDirectory)
	config.LogFile = expandHome(config.LogFile)
	return config, nil
}

func expandHome(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
		}
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return path
}

func (c *Config) GlyphSet() *GlyphSet {
	gs, err := GlyphSetByName(c.Glyphs)
	if err != nil {
		return UnicodeGlyphs
	}
	return gs
}

func (c *Config) Tool() Tool {
	t, _ := parseTool(strings.ToLower(c.DefaultTool))
	return t
}

// GetSavePath resolves a bare file name into the save directory. Absolute
// and explicitly relative paths are used as given.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) || strings.ContainsRune(filename, filepath.Separator) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
