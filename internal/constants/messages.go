package constants

// Package messages contains all text message constants shown to the user by rapture.

// Menu messages
const (
	// MsgMenuHeader is the title rendered above the menu items.
	MsgMenuHeader = "Rapture-Transcoder Menu:"

	// MsgMenuPrompt is the prompt asking for a menu choice.
	MsgMenuPrompt = "Enter your choice: "

	// MsgInvalidChoice is printed when the choice does not name a menu item.
	MsgInvalidChoice = "Invalid choice. Please try again."

	// MsgGoodbye is printed when the menu loop ends.
	MsgGoodbye = "Thank you for using Rapture-Transcoder!"

	// MsgActionFailed is the single line printed when an action returns an error.
	MsgActionFailed = "Error: %v"
)

// Menu item labels
const (
	LabelTranscode = "Start Transcoding"
	LabelCheck     = "Check Dependencies"
	LabelSetup     = "Run Setup"
	LabelLogs      = "View Logs"
	LabelSchedule  = "Schedule Transcoding Task"
	LabelExit      = "Exit"
)

// Transcode messages
const (
	// MsgTranscodeStarting is printed before the transcoding script is launched.
	MsgTranscodeStarting = "Starting Rapture-Transcoder..."

	// MsgTranscodeSuccess is printed when the script exits with status 0.
	MsgTranscodeSuccess = "Transcoding completed successfully."

	// MsgTranscodeFailed is printed when the script exits with a non-zero status.
	MsgTranscodeFailed = "An error occurred during transcoding. Check the logs for details."
)

// Dependency check messages
const (
	// MsgDependencyMissing is printed for the first tool that could not be found.
	MsgDependencyMissing = "%s is not installed or not in PATH."

	// MsgDependenciesOK is printed when every tool was found.
	MsgDependenciesOK = "All dependencies are installed."

	// MsgDependencyFound is a per-tool report line.
	MsgDependencyFound = "  %s %s (%s)"

	// MsgDependencyTooOld is printed when a tool is older than the configured minimum.
	MsgDependencyTooOld = "%s %s is older than the required %s."
)

// Setup messages
const (
	MsgSetupRunning     = "Running setup script..."
	MsgSetupSuccess     = "Setup completed successfully."
	MsgSetupFailed      = "An error occurred during setup. Please check the output for details."
	MsgSetupUnsupported = "Automatic installation is not supported on %s. Please install the dependencies manually."

	MsgSetupInstallingFFmpeg       = "Installing FFmpeg..."
	MsgSetupInstallingRequirements = "Installing Python requirements..."
	MsgSetupStepFailed             = "Error: %s failed with exit code %d."
)

// Log viewer messages
const (
	MsgLogsOpening  = "Opening log file..."
	MsgLogsNotFound = "Log file not found: %s"
)

// Schedule messages
const (
	// MsgScheduleTimePrompt asks for the time-of-day component.
	MsgScheduleTimePrompt = "Enter the time to schedule the task (HH:MM): "

	// MsgScheduleIntervalPrompt asks for the repeat interval in hours.
	MsgScheduleIntervalPrompt = "Enter the number of hours between task runs (e.g., 12, 24, 168): "

	// MsgScheduleSuccess confirms the installed crontab entry.
	MsgScheduleSuccess = "Task scheduled successfully to run at %s, every %s hours."

	// MsgScheduleFailed is printed when the crontab could not be replaced.
	MsgScheduleFailed = "Failed to schedule task. Make sure you have permission to modify crontab."

	// MsgSchedulePathFailed is printed when the working directory cannot be resolved.
	MsgSchedulePathFailed = "Failed to get current working directory."

	// MsgScheduleWarning prefixes a lint finding for the generated expression.
	MsgScheduleWarning = "Warning: %s"

	// MsgScheduleNextRun previews the next activation of the generated expression.
	MsgScheduleNextRun = "Next run: %s"

	// MsgScheduleDryRun prints the crontab line that would be installed.
	MsgScheduleDryRun = "Would append to crontab: %s"
)

// Config messages
const (
	// MsgConfigLoadError is the error message when configuration loading fails.
	MsgConfigLoadError = "❌ Failed to load configuration: %v\n"

	// MsgConfigValidationError is the message when configuration validation fails.
	MsgConfigValidationError = "❌ Configuration validation failed:\n"

	// MsgConfigValid is the message when configuration is successfully loaded and validated.
	MsgConfigValid = "✅ Configuration loaded"

	// MsgConfigValidatePrefix is the prefix for configuration validation errors.
	MsgConfigValidatePrefix = "  - %v\n"
)
