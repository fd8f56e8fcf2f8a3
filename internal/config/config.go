package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Defaults match the layout of the Android app.
const (
	DefaultScriptRoot  = "/sdcard/ejoy2d"
	DefaultEntryScript = "/sdcard/ejoy2d/ex04.lua"
	DefaultSearchPath  = "{root}/?.lua;{root}/?/init.lua;{root}/assets/?.lua;{root}/assets/?/init.lua"
	DefaultWidth       = 1024
	DefaultHeight      = 768
)

// RootPlaceholder is replaced by the script root in SearchPath.
const RootPlaceholder = "{root}"

// Config is the bridge configuration. Every field can come from the
// environment; the desktop CLI overrides them with flags.
type Config struct {
	// ScriptRoot is the working directory handed to the bootstrap program.
	ScriptRoot string `env:"GAMEHOST_SCRIPT_ROOT" envDefault:"/sdcard/ejoy2d"`

	// EntryScript is the user script invoked by the bootstrap program.
	EntryScript string `env:"GAMEHOST_ENTRY_SCRIPT" envDefault:"/sdcard/ejoy2d/ex04.lua"`

	// SearchPath is the module search template, {root} expands to ScriptRoot.
	SearchPath string `env:"GAMEHOST_SEARCH_PATH" envDefault:"{root}/?.lua;{root}/?/init.lua;{root}/assets/?.lua;{root}/assets/?/init.lua"`

	Width  int     `env:"GAMEHOST_WIDTH" envDefault:"1024"`
	Height int     `env:"GAMEHOST_HEIGHT" envDefault:"768"`
	Scale  float32 `env:"GAMEHOST_SCALE" envDefault:"1.0"`

	// Tick is the fixed simulation step in seconds applied by every Update.
	Tick float32 `env:"GAMEHOST_TICK" envDefault:"0.01"`

	// FontAsset names the packaged TTF loaded by the font service.
	FontAsset string `env:"GAMEHOST_FONT_ASSET" envDefault:"FZCY_GBK.ttf"`

	// Extract lists packaged assets copied under ScriptRoot before bootstrap.
	Extract []string `env:"GAMEHOST_EXTRACT" envSeparator:","`

	// AssetDir backs the packaged asset store on desktop builds.
	AssetDir string `env:"GAMEHOST_ASSET_DIR" envDefault:"assets"`

	LogLevel string `env:"GAMEHOST_LOG_LEVEL" envDefault:"info"`
	LogDev   bool   `env:"GAMEHOST_LOG_DEV" envDefault:"false"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		ScriptRoot:  DefaultScriptRoot,
		EntryScript: DefaultEntryScript,
		SearchPath:  DefaultSearchPath,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Scale:       1.0,
		Tick:        0.01,
		FontAsset:   "FZCY_GBK.ttf",
		AssetDir:    "assets",
		LogLevel:    "info",
	}
}

// Load reads the configuration from environment variables. It does not
// validate: callers layer flags on top and validate the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields the session cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ScriptRoot) == "" {
		return fmt.Errorf("script root is required")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("invalid scale %v", c.Scale)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("invalid tick %v", c.Tick)
	}
	return nil
}

// ModulePath expands the search template against the script root.
func (c Config) ModulePath() string {
	return ExpandSearchPath(c.SearchPath, c.ScriptRoot)
}

// ExpandSearchPath replaces every {root} in template with root.
func ExpandSearchPath(template, root string) string {
	root = strings.TrimSuffix(root, "/")
	return strings.ReplaceAll(template, RootPlaceholder, root)
}
