// Package schedule turns a time of day and a repeat interval into a
// crontab entry and installs it for the current user.
//
// The expression shapes are kept compatible with entries written by
// earlier releases:
//
//	24 hours   "<time> * * * *"
//	168 hours  "<time> * * * 0"
//	otherwise  "<time> */<hours> * * *"
//
// The time of day is embedded verbatim. Expressions that cron would
// reject or misread are reported by Lint but still installed.
package schedule

import (
	"fmt"
	"math"

	"github.com/aatumaykin/rapture/internal/constants"
)

// Request is a scheduling request entered by the user.
type Request struct {
	TimeOfDay     string
	IntervalHours int
}

// Expression is a five-field cron expression.
type Expression string

// Expression derives the cron expression for r.
func (r Request) Expression() Expression {
	switch r.IntervalHours {
	case constants.IntervalDaily:
		return Expression(r.TimeOfDay + " * * * *")
	case constants.IntervalWeekly:
		return Expression(r.TimeOfDay + " * * * 0")
	default:
		return Expression(fmt.Sprintf("%s */%d * * *", r.TimeOfDay, r.IntervalHours))
	}
}

// Entry is one crontab line: an expression followed by the command it runs.
type Entry struct {
	Expression Expression
	Command    string
}

// String returns the crontab line without a trailing newline.
func (e Entry) String() string {
	return string(e.Expression) + " " + e.Command
}

// ParseInterval parses free-form interval text the way C atoi does:
// leading whitespace is skipped, an optional sign is accepted, and the
// leading run of digits is converted. Text without leading digits is 0.
// Values beyond the int32 range are clamped.
func ParseInterval(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	negative := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		negative = s[i] == '-'
		i++
	}

	var n int64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxInt32+1 {
			n = math.MaxInt32 + 1
		}
	}

	if negative {
		n = -n
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	return int(n)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
