package config

import "github.com/aatumaykin/rapture/internal/constants"

// DefaultTools returns the tools probed when [dependencies] lists none.
func DefaultTools() []ToolConfig {
	return []ToolConfig{
		{
			Name:       "python3",
			Display:    "Python",
			VersionArg: "--version",
			MinVersion: "3.8",
		},
		{
			Name:       "ffmpeg",
			Display:    "FFmpeg",
			VersionArg: "-version",
		},
	}
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	_ = expandEnvVars(cfg)
	return cfg
}

// applyDefaults fills unset fields
func applyDefaults(c *Config) {
	if c.Paths.InputDir == "" {
		c.Paths.InputDir = constants.DefaultInputDir
	}
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = constants.DefaultOutputDir
	}
	if c.Paths.MoviesDir == "" {
		c.Paths.MoviesDir = constants.DefaultMoviesDir
	}
	if c.Paths.TVShowsDir == "" {
		c.Paths.TVShowsDir = constants.DefaultTVShowsDir
	}

	if c.Transcode.Interpreter == "" {
		c.Transcode.Interpreter = constants.DefaultInterpreter
	}
	if c.Transcode.Script == "" {
		c.Transcode.Script = constants.DefaultTranscodeScript
	}
	if c.Transcode.Codec == "" {
		c.Transcode.Codec = constants.DefaultCodec
	}
	if c.Transcode.Quality == 0 {
		c.Transcode.Quality = constants.DefaultQuality
	}

	if c.Schedule.Launcher == "" {
		c.Schedule.Launcher = constants.DefaultLauncher
	}

	if c.Setup.Script == "" {
		c.Setup.Script = constants.DefaultSetupScript
	}
	if c.Setup.Requirements == "" {
		c.Setup.Requirements = constants.DefaultRequirementsFile
	}

	if len(c.Dependencies.Tools) == 0 {
		c.Dependencies.Tools = DefaultTools()
	}
	for i := range c.Dependencies.Tools {
		tool := &c.Dependencies.Tools[i]
		if tool.Display == "" {
			tool.Display = tool.Name
		}
		if tool.VersionArg == "" {
			tool.VersionArg = "--version"
		}
	}

	if c.Logs.File == "" {
		c.Logs.File = constants.DefaultLogFile
	}

	// The menu owns stdout; logs stay quiet on stderr
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "pretty"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
}
