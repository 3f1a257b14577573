package schedule

import "fmt"

// PathResolutionError is returned when the working directory cannot be
// determined. The crontab is not touched.
type PathResolutionError struct {
	Err error
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve working directory: %v", e.Err)
}

func (e *PathResolutionError) Unwrap() error {
	return e.Err
}

// CrontabInstallError is returned when the crontab could not be read or
// replaced. The crontab keeps its previous content.
type CrontabInstallError struct {
	Entry Entry
	Err   error
}

func (e *CrontabInstallError) Error() string {
	return fmt.Sprintf("failed to install crontab entry %q: %v", e.Entry.String(), e.Err)
}

func (e *CrontabInstallError) Unwrap() error {
	return e.Err
}
