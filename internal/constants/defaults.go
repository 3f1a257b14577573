package constants

// DefaultVersion is the default version of the application
const DefaultVersion = "0.1.0-dev"

// DefaultBuildTime is the default build time when not provided at build time
const DefaultBuildTime = "unknown"

// DefaultGitCommit is the default git commit hash when not provided at build time
const DefaultGitCommit = "unknown"

// DefaultGoVersion is the default Go version when not provided at build time
const DefaultGoVersion = "unknown"

// DefaultInterpreter runs the transcoding script
const DefaultInterpreter = "python3"

// DefaultCodec is the video codec passed to the transcoding script
const DefaultCodec = "x264"

// DefaultQuality is the CRF value passed to the transcoding script
const DefaultQuality = 18

// MaxQuality is the highest CRF value accepted by x264/x265
const MaxQuality = 51

// Cron intervals with dedicated expressions
const (
	IntervalDaily  = 24
	IntervalWeekly = 168
)
