package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/aatumaykin/rapture/internal/constants"
)

// Load reads the configuration from a TOML or YAML file
func Load(path string) (*Config, error) {
	return LoadFS(afero.NewOsFs(), path)
}

// LoadFS reads the configuration from fsys.
// .yaml and .yml files are parsed as YAML, anything else as TOML.
func LoadFS(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := expandEnvVars(&cfg); err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault is LoadFS that falls back to Default when the file does not exist
func LoadOrDefault(fsys afero.Fs, path string) (*Config, error) {
	cfg, err := LoadFS(fsys, path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return nil, err
}

// Validate returns every configuration error found
func (c *Config) Validate() []error {
	var errs []error

	// Directories
	dirs := []struct {
		field string
		value string
	}{
		{"paths.input_dir", c.Paths.InputDir},
		{"paths.output_dir", c.Paths.OutputDir},
		{"paths.movies_dir", c.Paths.MoviesDir},
		{"paths.tv_shows_dir", c.Paths.TVShowsDir},
	}
	for _, d := range dirs {
		if err := validatePath(d.value, d.field); err != nil {
			errs = append(errs, err)
		}
	}

	// Transcode
	if c.Transcode.Interpreter == "" {
		errs = append(errs, fmt.Errorf("transcode.interpreter is required"))
	}
	if c.Transcode.Script == "" {
		errs = append(errs, fmt.Errorf("transcode.script is required"))
	}
	if c.Transcode.Codec == "" {
		errs = append(errs, fmt.Errorf("transcode.codec is required"))
	}
	if c.Transcode.Quality < 0 || c.Transcode.Quality > constants.MaxQuality {
		errs = append(errs, fmt.Errorf("transcode.quality must be between 0 and %d (got %d)", constants.MaxQuality, c.Transcode.Quality))
	}

	// Media detection
	if c.MediaDetection.Enabled {
		if c.MediaDetection.OMDbAPIKey == "" {
			errs = append(errs, fmt.Errorf("media_detection.omdb_api_key is required when media detection is enabled"))
		} else if err := validateAPIKey(c.MediaDetection.OMDbAPIKey, "media_detection.omdb_api_key"); err != nil {
			errs = append(errs, err)
		}
	}

	// Launcher
	if c.Schedule.Launcher == "" {
		errs = append(errs, fmt.Errorf("schedule.launcher is required"))
	} else if strings.ContainsAny(c.Schedule.Launcher, " \t\n") {
		errs = append(errs, fmt.Errorf("schedule.launcher must not contain whitespace: %q", c.Schedule.Launcher))
	}

	// Dependencies
	for i, tool := range c.Dependencies.Tools {
		if tool.Name == "" {
			errs = append(errs, fmt.Errorf("dependencies.tools[%d].name is required", i))
		}
		if tool.MinVersion != "" {
			if _, err := semver.NewVersion(tool.MinVersion); err != nil {
				errs = append(errs, fmt.Errorf("dependencies.tools[%d].min_version is not a valid version: %s", i, tool.MinVersion))
			}
		}
	}

	if c.Logs.File == "" {
		errs = append(errs, fmt.Errorf("logs.file is required"))
	}

	// Logging
	if c.Logging.Level == "" {
		errs = append(errs, fmt.Errorf("logging.level is required"))
	} else {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[strings.ToLower(c.Logging.Level)] {
			errs = append(errs, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
		}
	}

	if c.Logging.Format == "" {
		errs = append(errs, fmt.Errorf("logging.format is required"))
	} else {
		validFormats := map[string]bool{"json": true, "text": true, "pretty": true}
		if !validFormats[strings.ToLower(c.Logging.Format)] {
			errs = append(errs, fmt.Errorf("invalid logging.format: %s (expected: json, text, pretty)", c.Logging.Format))
		}
	}

	if c.Logging.Output == "" {
		errs = append(errs, fmt.Errorf("logging.output is required"))
	}

	return errs
}

// Helper validation functions
func validateAPIKey(key, fieldName string) error {
	if key == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	if len(key) < 8 {
		return formatValidationError(fieldName, fmt.Sprintf("is too short (minimum 8 characters, got %d)", len(key)), key)
	}

	return nil
}

func validatePath(path, fieldName string) error {
	if path == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	if strings.HasPrefix(path, "~") {
		return nil
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("%s contains potentially dangerous path traversal sequence", fieldName)
	}

	return nil
}

// expandEnvVars expands ${VAR} and ${VAR:default} tokens in the secret
// and path fields, then ~ in paths.
func expandEnvVars(c *Config) error {
	c.MediaDetection.OMDbAPIKey = expandEnv(c.MediaDetection.OMDbAPIKey)

	for _, p := range []*string{
		&c.Paths.InputDir,
		&c.Paths.OutputDir,
		&c.Paths.MoviesDir,
		&c.Paths.TVShowsDir,
		&c.Logs.File,
		&c.Metrics.TextfilePath,
	} {
		*p = expandHome(expandEnv(*p))
	}

	return nil
}

// expandEnv replaces every ${VAR} or ${VAR:default} token in s and keeps
// the text around it. An unterminated token is left as is.
func expandEnv(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start == -1 {
			break
		}
		end := strings.Index(s[start:], "}")
		if end == -1 {
			break
		}
		end += start

		b.WriteString(s[:start])
		key, defaultVal, hasDefault := strings.Cut(s[start+2:end], ":")
		val := os.Getenv(key)
		if val == "" && hasDefault {
			val = defaultVal
		}
		b.WriteString(val)
		s = s[end+1:]
	}
	b.WriteString(s)
	return b.String()
}

// expandHome expands a leading ~/
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
