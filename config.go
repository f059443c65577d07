package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"viewer/internal/nav"
	"viewer/internal/session"
)

// Limits for numeric configuration values
const (
	defaultPanDelta  = 40
	minPanDelta      = 1
	maxPanDelta      = 1000
	defaultCacheSize = 4
	maxCacheSize     = 64
)

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	PanDelta      int  `json:"pan_delta"`
	CacheSize     int  `json:"cache_size"`
	SortMethod    int  `json:"sort_method"`
	WheelInverted bool `json:"wheel_inverted"`
	FrameShadow   bool `json:"frame_shadow"`
	Fullscreen    bool `json:"fullscreen"`
	Overlay       bool `json:"overlay"`
	Debug         bool `json:"debug"`
}

func defaultConfig() Config {
	return Config{
		PanDelta:    defaultPanDelta,
		CacheSize:   defaultCacheSize,
		SortMethod:  nav.SortModTime,
		FrameShadow: true,
		Overlay:     true,
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "viewer.json"
	}
	return filepath.Join(homeDir, ".viewer.json")
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Printf("Warning: %s", msg)
		result.Warnings = append(result.Warnings, msg)
		result.Status = "Warning"
	}

	if config.PanDelta < minPanDelta || config.PanDelta > maxPanDelta {
		warn("pan_delta %d out of range %d..%d, using %d", config.PanDelta, minPanDelta, maxPanDelta, defaultPanDelta)
		config.PanDelta = defaultPanDelta
	}

	// 0 disables the cache
	if config.CacheSize < 0 {
		warn("cache_size %d is negative, using %d", config.CacheSize, defaultCacheSize)
		config.CacheSize = defaultCacheSize
	} else if config.CacheSize > maxCacheSize {
		warn("cache_size %d exceeds %d, using %d", config.CacheSize, maxCacheSize, maxCacheSize)
		config.CacheSize = maxCacheSize
	}

	if config.SortMethod < nav.SortModTime || config.SortMethod > nav.SortEntryOrder {
		warn("unknown sort_method %d, using %s", config.SortMethod, getSortMethodName(nav.SortModTime))
		config.SortMethod = nav.SortModTime
	}

	result.Config = config
	return result
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	return nav.GetSortStrategy(sortMethod).Name()
}

// sessionOptions maps the configuration onto session options.
func (c Config) sessionOptions() session.Options {
	opts := session.DefaultOptions()
	opts.PanDelta = float64(c.PanDelta)
	opts.Shadow = c.FrameShadow
	opts.Overlay = c.Overlay
	opts.StartFullscreen = c.Fullscreen
	return opts
}

func saveConfigToPath(config Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("save config to %s: %w", configPath, err)
	}
	return nil
}
