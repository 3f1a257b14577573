package constants

// DefaultEnvPath is the default path to the .env file
const DefaultEnvPath = "./.env"

// DefaultConfigPath is the default path to the config.toml file
const DefaultConfigPath = "./config.toml"

// DefaultLauncher is the launcher file name appended to the working directory in crontab entries
const DefaultLauncher = "run"

// DefaultLogFile is the log file written by the transcoding script
const DefaultLogFile = "logs/transcoding.log"

// DefaultSetupScript is the setup script executed before the built-in install plan
const DefaultSetupScript = "./setup"

// DefaultRequirementsFile is the pip requirements file used by the built-in install plan
const DefaultRequirementsFile = "requirements.txt"

// DefaultTranscodeScript is the external transcoding script
const DefaultTranscodeScript = "run_transcode.py"

// Default media directories
const (
	DefaultInputDir   = "~/media/trans_in"
	DefaultOutputDir  = "~/media/trans_out"
	DefaultMoviesDir  = "~/media/movies"
	DefaultTVShowsDir = "~/media/tv_shows"
)
