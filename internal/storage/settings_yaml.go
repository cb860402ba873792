package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"conferencetimer/internal/core/model"
	"conferencetimer/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	TickIntervalMillis int     `yaml:"tick_interval_ms"`
	WarningSeconds     int     `yaml:"warning_seconds"`
	TerminateSeconds   int     `yaml:"terminate_seconds"`
	ThresholdMatch     string  `yaml:"threshold_match"`
	WarningTimeout     string  `yaml:"warning_timeout"`
	OverlayOpacity     float64 `yaml:"overlay_opacity"`
	Fullscreen         bool    `yaml:"fullscreen"`
	LogLevel           string  `yaml:"log_level"`
	EventLogPath       string  `yaml:"event_log_path,omitempty"`
}

// LoadSettings reads user preferences from the app's YAML file.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from path.
func LoadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the app's YAML file.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to path.
func SaveSettingsFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		TickIntervalMillis: int(settings.TickInterval / time.Millisecond),
		WarningSeconds:     int(settings.WarningAt / time.Second),
		TerminateSeconds:   int(settings.TerminateAt / time.Second),
		ThresholdMatch:     string(settings.Match),
		WarningTimeout:     string(settings.WarningTimeout),
		OverlayOpacity:     settings.OverlayOpacity,
		Fullscreen:         settings.Fullscreen,
		LogLevel:           settings.LogLevel,
		EventLogPath:       settings.EventLogPath,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.TickIntervalMillis > 0 {
		settings.TickInterval = time.Duration(fileData.TickIntervalMillis) * time.Millisecond
	}
	if fileData.WarningSeconds > 0 {
		settings.WarningAt = time.Duration(fileData.WarningSeconds) * time.Second
	}
	if fileData.TerminateSeconds > 0 {
		settings.TerminateAt = time.Duration(fileData.TerminateSeconds) * time.Second
	}

	switch model.ThresholdMatch(fileData.ThresholdMatch) {
	case model.MatchExact, model.MatchCrossing:
		settings.Match = model.ThresholdMatch(fileData.ThresholdMatch)
	}
	switch model.NotificationTimeout(fileData.WarningTimeout) {
	case model.TimeoutShort, model.TimeoutMedium, model.TimeoutLong:
		settings.WarningTimeout = model.NotificationTimeout(fileData.WarningTimeout)
	}

	if fileData.OverlayOpacity >= 0.5 && fileData.OverlayOpacity <= 1 {
		settings.OverlayOpacity = fileData.OverlayOpacity
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}

	settings.Fullscreen = fileData.Fullscreen
	settings.EventLogPath = fileData.EventLogPath
}
