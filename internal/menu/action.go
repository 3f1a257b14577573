package menu

import (
	"strconv"
	"strings"

	"github.com/aatumaykin/rapture/internal/constants"
)

// Action is a numbered menu item.
type Action int

const (
	ActionInvalid Action = iota
	ActionTranscode
	ActionCheck
	ActionSetup
	ActionLogs
	ActionSchedule
	ActionExit
)

// Actions lists the menu items in display order.
var Actions = []Action{
	ActionTranscode,
	ActionCheck,
	ActionSetup,
	ActionLogs,
	ActionSchedule,
	ActionExit,
}

var actionNames = map[Action]string{
	ActionTranscode: "transcode",
	ActionCheck:     "check",
	ActionSetup:     "setup",
	ActionLogs:      "logs",
	ActionSchedule:  "schedule",
	ActionExit:      "exit",
}

var actionLabels = map[Action]string{
	ActionTranscode: constants.LabelTranscode,
	ActionCheck:     constants.LabelCheck,
	ActionSetup:     constants.LabelSetup,
	ActionLogs:      constants.LabelLogs,
	ActionSchedule:  constants.LabelSchedule,
	ActionExit:      constants.LabelExit,
}

// String returns the short name used in logs and metrics.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "invalid"
}

// Label returns the text shown in the menu.
func (a Action) Label() string {
	return actionLabels[a]
}

// Valid reports whether a is one of the menu items.
func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// ParseAction reads a menu choice the way atoi would: surrounding
// whitespace and trailing text after the leading digits are ignored.
func ParseAction(s string) Action {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return ActionInvalid
	}
	a := Action(n)
	if !a.Valid() {
		return ActionInvalid
	}
	return a
}
