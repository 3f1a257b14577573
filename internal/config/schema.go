// Package config provides configuration loading and validation for rapture.
// It supports TOML and YAML configuration files with environment variable
// expansion, default values, and comprehensive validation.
//
// Configuration structure:
//   - [paths]: Input, output and library directories handed to the transcoder
//   - [transcode]: Interpreter, script, codec and quality of the transcoder
//   - [media_detection]: OMDb-based movie/TV sorting
//   - [schedule]: Launcher file referenced by crontab entries
//   - [setup]: Setup script and pip requirements
//   - [dependencies]: Tools probed by the dependency check
//   - [logs]: Log file opened by the log viewer
//   - [logging]: Logging level, format, and output
//   - [metrics]: Prometheus textfile export
//
// Environment variables:
// Environment variables can be referenced using ${VAR} or ${VAR:default} syntax.
// For example: omdb_api_key = "${OMDB_API_KEY:}"
package config

// Config represents the main application configuration.
// A Config is loaded once and then only read.
type Config struct {
	Paths          PathsConfig          `toml:"paths" yaml:"paths"`
	Transcode      TranscodeConfig      `toml:"transcode" yaml:"transcode"`
	MediaDetection MediaDetectionConfig `toml:"media_detection" yaml:"media_detection"`
	Schedule       ScheduleConfig       `toml:"schedule" yaml:"schedule"`
	Setup          SetupConfig          `toml:"setup" yaml:"setup"`
	Dependencies   DependenciesConfig   `toml:"dependencies" yaml:"dependencies"`
	Logs           LogsConfig           `toml:"logs" yaml:"logs"`
	Logging        LoggingConfig        `toml:"logging" yaml:"logging"`
	Metrics        MetricsConfig        `toml:"metrics" yaml:"metrics"`
}

// PathsConfig holds the media library directories
type PathsConfig struct {
	InputDir   string `toml:"input_dir" yaml:"input_dir"`
	OutputDir  string `toml:"output_dir" yaml:"output_dir"`
	MoviesDir  string `toml:"movies_dir" yaml:"movies_dir"`
	TVShowsDir string `toml:"tv_shows_dir" yaml:"tv_shows_dir"`
}

// TranscodeConfig configures the external transcoding script
type TranscodeConfig struct {
	Interpreter    string `toml:"interpreter" yaml:"interpreter"`
	Script         string `toml:"script" yaml:"script"`
	Codec          string `toml:"codec" yaml:"codec"`
	Quality        int    `toml:"quality" yaml:"quality"`
	DeleteOriginal bool   `toml:"delete_original" yaml:"delete_original"`
}

// MediaDetectionConfig configures movie and TV show detection
type MediaDetectionConfig struct {
	Enabled    bool   `toml:"enabled" yaml:"enabled"`
	OMDbAPIKey string `toml:"omdb_api_key" yaml:"omdb_api_key"`
}

// ScheduleConfig configures crontab entries
type ScheduleConfig struct {
	Launcher string `toml:"launcher" yaml:"launcher"`
}

// SetupConfig configures dependency installation
type SetupConfig struct {
	Script       string `toml:"script" yaml:"script"`
	Requirements string `toml:"requirements" yaml:"requirements"`
}

// DependenciesConfig lists the probed tools
type DependenciesConfig struct {
	Tools []ToolConfig `toml:"tools" yaml:"tools"`
}

// ToolConfig describes one external tool probed by the dependency check.
type ToolConfig struct {
	Name       string `toml:"name" yaml:"name"`
	Display    string `toml:"display" yaml:"display"`
	VersionArg string `toml:"version_arg" yaml:"version_arg"`
	MinVersion string `toml:"min_version" yaml:"min_version"`
}

// LogsConfig configures the log viewer
type LogsConfig struct {
	File   string `toml:"file" yaml:"file"`
	Opener string `toml:"opener" yaml:"opener"`
}

// LoggingConfig configures structured logging
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	Output string `toml:"output" yaml:"output"`
}

// MetricsConfig configures metrics export
type MetricsConfig struct {
	TextfilePath string `toml:"textfile_path" yaml:"textfile_path"`
}
