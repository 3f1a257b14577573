package schedule

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestExpression(t *testing.T) {
	times := []string{"09:30", "18:00", "", "25:99", "not a time", "*"}

	for _, tod := range times {
		t.Run(fmt.Sprintf("daily %q", tod), func(t *testing.T) {
			assert.Equal(t, Expression(tod+" * * * *"), Request{TimeOfDay: tod, IntervalHours: 24}.Expression())
		})
		t.Run(fmt.Sprintf("weekly %q", tod), func(t *testing.T) {
			assert.Equal(t, Expression(tod+" * * * 0"), Request{TimeOfDay: tod, IntervalHours: 168}.Expression())
		})
		for _, n := range []int{1, 5, 12, 23, 25, 167, 169, 1000} {
			t.Run(fmt.Sprintf("every %d %q", n, tod), func(t *testing.T) {
				want := Expression(fmt.Sprintf("%s */%d * * *", tod, n))
				assert.Equal(t, want, Request{TimeOfDay: tod, IntervalHours: n}.Expression())
			})
		}
	}
}

func TestRequestExpression_ZeroInterval(t *testing.T) {
	req := Request{TimeOfDay: "06:15", IntervalHours: ParseInterval("daily")}
	assert.Equal(t, Expression("06:15 */0 * * *"), req.Expression())
}

func TestRequestExpression_Deterministic(t *testing.T) {
	req := Request{TimeOfDay: "06:15", IntervalHours: 12}
	assert.Equal(t, req.Expression(), req.Expression())
}

func TestEntryString(t *testing.T) {
	e := Entry{Expression: "09:30 * * * *", Command: "/srv/rapture/run"}
	assert.Equal(t, "09:30 * * * * /srv/rapture/run", e.String())
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"24", 24},
		{"168", 168},
		{"12", 12},
		{"  12", 12},
		{"\t\n7", 7},
		{"+5", 5},
		{"-3", -3},
		{"12h", 12},
		{"12 hours", 12},
		{"007", 7},
		{"", 0},
		{"abc", 0},
		{"h12", 0},
		{"-", 0},
		{"+-1", 0},
		{"1 2", 1},
		{"１２", 0},
		{"99999999999", math.MaxInt32},
		{"-99999999999", math.MinInt32},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInterval(tt.input))
		})
	}
}
