// Package crontab reads and replaces the per-user cron table.
package crontab

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aatumaykin/rapture/internal/executor"
)

// Store gives access to the current user's crontab.
type Store interface {
	// Read returns the current crontab. A missing crontab reads as "".
	Read(ctx context.Context) (string, error)
	// Write replaces the whole crontab with content.
	Write(ctx context.Context, content string) error
}

// WriteError is returned when the crontab tool rejects new content.
type WriteError struct {
	ExitCode int
	Stderr   string
}

func (e *WriteError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("crontab exited with code %d: %s", e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("crontab exited with code %d", e.ExitCode)
}

// CommandStore implements Store with the crontab(1) program.
type CommandStore struct {
	runner  executor.Runner
	program string
}

// NewCommandStore creates a store backed by the crontab program.
func NewCommandStore(runner executor.Runner) *CommandStore {
	return &CommandStore{runner: runner, program: "crontab"}
}

// Read runs `crontab -l`. A non-zero exit ("no crontab for user") reads as empty.
func (s *CommandStore) Read(ctx context.Context) (string, error) {
	var stdout, stderr bytes.Buffer
	res, err := s.runner.Run(ctx, executor.Command{
		Name:   s.program,
		Args:   []string{"-l"},
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		return "", fmt.Errorf("failed to read crontab: %w", err)
	}
	if !res.OK() {
		return "", nil
	}
	return stdout.String(), nil
}

// Write runs `crontab -` with content on stdin.
func (s *CommandStore) Write(ctx context.Context, content string) error {
	var stderr bytes.Buffer
	res, err := s.runner.Run(ctx, executor.Command{
		Name:   s.program,
		Args:   []string{"-"},
		Stdin:  strings.NewReader(content),
		Stdout: &bytes.Buffer{},
		Stderr: &stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to write crontab: %w", err)
	}
	if !res.OK() {
		return &WriteError{ExitCode: res.ExitCode, Stderr: strings.TrimSpace(stderr.String())}
	}
	return nil
}

// Append returns existing with line added as its last line.
func Append(existing, line string) string {
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		existing += "\n"
	}
	return existing + line + "\n"
}

// Entries returns the non-empty, non-comment lines of a crontab.
func Entries(content string) []string {
	var entries []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu      sync.Mutex
	content string
	writes  int

	// ReadErr and WriteErr, when set, are returned by Read and Write.
	ReadErr  error
	WriteErr error
}

// NewMemoryStore creates a MemoryStore holding content.
func NewMemoryStore(content string) *MemoryStore {
	return &MemoryStore{content: content}
}

// Read returns the stored content.
func (m *MemoryStore) Read(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.content, nil
}

// Write replaces the stored content.
func (m *MemoryStore) Write(ctx context.Context, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.content = content
	m.writes++
	return nil
}

// Content returns the stored content.
func (m *MemoryStore) Content() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// Writes returns how many times Write succeeded.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
