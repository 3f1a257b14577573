// Package deps probes the external tools the transcoder depends on.
package deps

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/wasilibs/go-re2"

	"github.com/aatumaykin/rapture/internal/config"
	"github.com/aatumaykin/rapture/internal/executor"
	"github.com/aatumaykin/rapture/internal/logger"
)

var versionPattern = re2.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// Status is the probe result for one tool.
type Status struct {
	Tool    config.ToolConfig
	Found   bool
	Version string

	// MeetsMinimum is true when no minimum is configured or the version
	// could not be extracted.
	MeetsMinimum bool
}

// Report is the result of probing every configured tool.
type Report struct {
	Statuses []Status
}

// AllPresent reports whether every tool was found.
func (r Report) AllPresent() bool {
	_, missing := r.FirstMissing()
	return !missing
}

// FirstMissing returns the first tool that was not found.
func (r Report) FirstMissing() (Status, bool) {
	for _, s := range r.Statuses {
		if !s.Found {
			return s, true
		}
	}
	return Status{}, false
}

// Outdated returns the tools that are older than their configured minimum.
func (r Report) Outdated() []Status {
	var out []Status
	for _, s := range r.Statuses {
		if s.Found && !s.MeetsMinimum {
			out = append(out, s)
		}
	}
	return out
}

// Checker probes tools by running them with their version argument.
type Checker struct {
	runner executor.Runner
	tools  []config.ToolConfig
	logger *logger.Logger
}

// NewChecker creates a new Checker.
func NewChecker(runner executor.Runner, tools []config.ToolConfig, log *logger.Logger) *Checker {
	if log == nil {
		log = logger.Discard()
	}
	return &Checker{
		runner: runner,
		tools:  tools,
		logger: log,
	}
}

// Check probes every tool in order. A tool is present when its version
// command starts and exits with status 0.
func (c *Checker) Check(ctx context.Context) (Report, error) {
	var report Report
	for _, tool := range c.tools {
		status, err := c.probe(ctx, tool)
		if err != nil {
			return report, err
		}
		report.Statuses = append(report.Statuses, status)
	}
	return report, nil
}

func (c *Checker) probe(ctx context.Context, tool config.ToolConfig) (Status, error) {
	status := Status{Tool: tool}

	var out bytes.Buffer
	res, err := c.runner.Run(ctx, executor.Command{
		Name:   tool.Name,
		Args:   []string{tool.VersionArg},
		Stdout: &out,
		Stderr: &out,
	})
	if ctx.Err() != nil {
		return status, fmt.Errorf("dependency check interrupted: %w", ctx.Err())
	}
	if err != nil || !res.OK() {
		c.logger.DebugCtx(ctx, "Dependency not found",
			logger.Field{Key: "tool", Value: tool.Name},
			logger.Field{Key: "exit_code", Value: res.ExitCode})
		return status, nil
	}

	status.Found = true
	status.Version = ExtractVersion(out.String())
	status.MeetsMinimum = MeetsMinimum(status.Version, tool.MinVersion)

	c.logger.DebugCtx(ctx, "Dependency found",
		logger.Field{Key: "tool", Value: tool.Name},
		logger.Field{Key: "version", Value: status.Version})
	return status, nil
}

// ExtractVersion returns the first dotted version number in output.
func ExtractVersion(output string) string {
	return versionPattern.FindString(output)
}

// MeetsMinimum reports whether version satisfies minimum. Unparseable or
// empty values never fail the check.
func MeetsMinimum(version, minimum string) bool {
	if version == "" || minimum == "" {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return true
	}
	constraint, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return true
	}
	return constraint.Check(v)
}
