/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration: render defaults, protocol
// recording patterns, logging and crash report settings. The YAML file lives
// in the user config directory; environment variables override it at
// runtime and are never written back.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	applog "overlaykit/internal/log"
)

// AppConfig is the user-editable configuration.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	Render        RenderConfig   `yaml:"render"`
	Protocol      ProtocolConfig `yaml:"protocol"`
	Logging       LoggingConfig  `yaml:"logging"`
	Crash         CrashConfig    `yaml:"crash"`
}

// RenderConfig holds defaults for frames that do not set them.
type RenderConfig struct {
	ScaleFactor float64 `yaml:"scale_factor"`
	HatchDelta  float64 `yaml:"hatch_delta"`
	LineWidth   float64 `yaml:"line_width"`
	Background  string  `yaml:"background"`
	Format      string  `yaml:"format"` // png | svg | pdf, used when the output has no extension
}

// ProtocolConfig selects which methods the monitor records, as glob patterns.
type ProtocolConfig struct {
	Record []string `yaml:"record,omitempty"`
	Ignore []string `yaml:"ignore,omitempty"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Source     bool   `yaml:"source"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

type CrashConfig struct {
	Dir string `yaml:"dir"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Render:        RenderConfig{ScaleFactor: 1, HatchDelta: 10, LineWidth: 1, Background: "white", Format: "png"},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath  = "OVK_CONFIG"
	EnvScaleFactor = "OVK_SCALE_FACTOR"
	EnvHatchDelta  = "OVK_HATCH_DELTA"
	EnvLineWidth   = "OVK_LINE_WIDTH"
	EnvBackground  = "OVK_BACKGROUND"
	EnvFormat      = "OVK_FORMAT"
	EnvCrashDir    = "OVK_CRASH_DIR"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "OVK_LOG_LEVEL"
	EnvLogFormat = "OVK_LOG_FORMAT"
	EnvLogSource = "OVK_LOG_SOURCE"
	EnvLogFile   = "OVK_LOG_FILE"
)

// envKeys maps dotted config keys to the env var overriding them.
var envKeys = map[string]string{
	"render.scale_factor": EnvScaleFactor,
	"render.hatch_delta":  EnvHatchDelta,
	"render.line_width":   EnvLineWidth,
	"render.background":   EnvBackground,
	"render.format":       EnvFormat,
	"crash.dir":           EnvCrashDir,
	"logging.level":       EnvLogLevel,
	"logging.format":      EnvLogFormat,
	"logging.source":      EnvLogSource,
	"logging.file":        EnvLogFile,
}

// ConfigPath returns the per-user config file path. OVK_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "overlaykit")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "overlaykit")
	default: // linux and others
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "overlaykit")
		} else if h := os.Getenv("HOME"); h != "" {
			base = filepath.Join(h, ".config", "overlaykit")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present) over the defaults and applies
// environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit path. A missing file is not an error; a
// malformed one is.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read config: %w", err)
	}
	applyEnvOverrides(&cfg)
	return cfg, cfg.Validate()
}

// Save writes cfg to the user config file.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg as YAML to path.
func SaveTo(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// YAML encodes c the way it is stored on disk.
func (c AppConfig) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Validate checks the render defaults.
func (c AppConfig) Validate() error {
	var problems []string
	if !(c.Render.ScaleFactor > 0) {
		problems = append(problems, "render.scale_factor must be positive")
	}
	if c.Render.HatchDelta < 0 {
		problems = append(problems, "render.hatch_delta must not be negative")
	}
	if !(c.Render.LineWidth > 0) {
		problems = append(problems, "render.line_width must be positive")
	}
	switch c.Render.Format {
	case "png", "svg", "pdf":
	default:
		problems = append(problems, fmt.Sprintf("render.format %q is not one of png, svg, pdf", c.Render.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// LogOptions converts the logging section for log.Init.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		AddSource:  c.Logging.Source,
		File:       c.Logging.File,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
	}
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// render: zero means "not set in the file"
	if src.Render.ScaleFactor != 0 {
		dst.Render.ScaleFactor = src.Render.ScaleFactor
	}
	if src.Render.HatchDelta != 0 {
		dst.Render.HatchDelta = src.Render.HatchDelta
	}
	if src.Render.LineWidth != 0 {
		dst.Render.LineWidth = src.Render.LineWidth
	}
	if v := strings.TrimSpace(src.Render.Background); v != "" {
		dst.Render.Background = v
	}
	if v := strings.TrimSpace(src.Render.Format); v != "" {
		dst.Render.Format = strings.ToLower(v)
	}
	if len(src.Protocol.Record) > 0 {
		dst.Protocol.Record = append([]string(nil), src.Protocol.Record...)
	}
	if len(src.Protocol.Ignore) > 0 {
		dst.Protocol.Ignore = append([]string(nil), src.Protocol.Ignore...)
	}
	// logging
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
	if src.Logging.MaxSizeMB > 0 {
		dst.Logging.MaxSizeMB = src.Logging.MaxSizeMB
	}
	if src.Logging.MaxBackups > 0 {
		dst.Logging.MaxBackups = src.Logging.MaxBackups
	}
	if v := strings.TrimSpace(src.Crash.Dir); v != "" {
		dst.Crash.Dir = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	float := func(key string, dst *float64) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = f
			}
		}
	}
	str := func(key string, dst *string, lower bool) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if lower {
				v = strings.ToLower(v)
			}
			*dst = v
		}
	}
	float(EnvScaleFactor, &cfg.Render.ScaleFactor)
	float(EnvHatchDelta, &cfg.Render.HatchDelta)
	float(EnvLineWidth, &cfg.Render.LineWidth)
	str(EnvBackground, &cfg.Render.Background, false)
	str(EnvFormat, &cfg.Render.Format, true)
	str(EnvCrashDir, &cfg.Crash.Dir, false)
	// logging overrides
	str(EnvLogLevel, &cfg.Logging.Level, true)
	str(EnvLogFormat, &cfg.Logging.Format, true)
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	str(EnvLogFile, &cfg.Logging.File, false)
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envKeys[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
