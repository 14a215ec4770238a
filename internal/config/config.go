// Package config loads the server configuration from an optional YAML file
// and PORTFOLIO_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Gerfy1/Gerfy-Portfolio/internal/i18n"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/shuffle"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/typewriter"
)

// EnvPrefix prefixes every environment override. Nested keys are separated
// by a double underscore: PORTFOLIO_ANIMATION__MIN_PERIOD=3s.
const EnvPrefix = "PORTFOLIO_"

type Server struct {
	Port         string `koanf:"port"`
	Mode         string `koanf:"mode"`
	Templates    string `koanf:"templates"`
	StaticDir    string `koanf:"static_dir"`
	ImagesDir    string `koanf:"images_dir"`
	SecureCookie bool   `koanf:"secure_cookie"`
}

type Log struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

type Site struct {
	DefaultLanguage string `koanf:"default_language"`
	DefaultTheme    string `koanf:"default_theme"`
	LeftVariant     string `koanf:"left_variant"`
	RightVariant    string `koanf:"right_variant"`
}

type Live struct {
	Queue       int `koanf:"queue"`
	MaxSessions int `koanf:"max_sessions"`
}

// Config is the full configuration.
type Config struct {
	Server    Server            `koanf:"server"`
	Log       Log               `koanf:"log"`
	Site      Site              `koanf:"site"`
	Live      Live              `koanf:"live"`
	Animation shuffle.Config    `koanf:"animation"`
	Typing    typewriter.Config `koanf:"typing"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: Server{
			Port:      "8080",
			Mode:      "release",
			Templates: "templates/*",
			StaticDir: "./static",
			ImagesDir: "./images",
		},
		Log: Log{Level: "info"},
		Site: Site{
			DefaultLanguage: string(i18n.Portuguese),
			DefaultTheme:    string(i18n.Dark),
			LeftVariant:     shuffle.Purple.Name,
			RightVariant:    shuffle.Blue.Name,
		},
		Live:      Live{Queue: 256, MaxSessions: 500},
		Animation: shuffle.DefaultConfig(),
		Typing:    typewriter.DefaultConfig(),
	}
}

// Load reads path if it exists, then applies environment overrides. The
// bare PORT variable, which most hosts set, wins over everything.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	return cfg, cfg.Validate()
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid server.mode %q: must be one of debug, release, test", c.Server.Mode)
	}
	if c.Live.Queue <= 0 {
		return fmt.Errorf("live.queue must be positive")
	}
	if c.Live.MaxSessions < 0 {
		return fmt.Errorf("live.max_sessions must be non-negative")
	}
	if err := c.Animation.Validate(); err != nil {
		return fmt.Errorf("animation: %w", err)
	}
	if c.Typing.TypeSpeed <= 0 || c.Typing.BackSpeed <= 0 {
		return fmt.Errorf("typing speeds must be positive")
	}
	return nil
}
