package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aatumaykin/rapture/internal/constants"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Lint reports problems cron will have with the expression produced for r.
// An empty result means the expression is a standard five-field schedule.
func Lint(r Request) []string {
	var warnings []string

	if _, err := parser.Parse(string(r.Expression())); err != nil {
		warnings = append(warnings, fmt.Sprintf("expression %q is not valid cron syntax: %v", r.Expression(), err))
	}

	switch {
	case r.IntervalHours == constants.IntervalDaily || r.IntervalHours == constants.IntervalWeekly:
	case r.IntervalHours <= 0:
		warnings = append(warnings, fmt.Sprintf("interval of %d hours never fires", r.IntervalHours))
	case 24%r.IntervalHours != 0:
		warnings = append(warnings, fmt.Sprintf("interval of %d hours does not divide a day; runs restart at midnight", r.IntervalHours))
	}

	return warnings
}

// Next returns the first activation of expr after from, if expr parses.
func Next(expr Expression, from time.Time) (time.Time, bool) {
	sched, err := parser.Parse(string(expr))
	if err != nil {
		return time.Time{}, false
	}
	return sched.Next(from), true
}
