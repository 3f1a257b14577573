package schedule

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/rapture/internal/crontab"
	"github.com/aatumaykin/rapture/internal/executor"
	"github.com/aatumaykin/rapture/internal/logger"
)

const workDir = "/srv/rapture"

func fixedDir(dir string) Option {
	return WithWorkingDir(func() (string, error) { return dir, nil })
}

func TestInstall_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		time     string
		interval string
		wantLine string
	}{
		{
			name:     "daily",
			time:     "09:30",
			interval: "24",
			wantLine: "09:30 * * * * /srv/rapture/run",
		},
		{
			name:     "weekly",
			time:     "18:00",
			interval: "168",
			wantLine: "18:00 * * * 0 /srv/rapture/run",
		},
		{
			name:     "every 12 hours",
			time:     "06:15",
			interval: "12",
			wantLine: "06:15 */12 * * * /srv/rapture/run",
		},
		{
			name:     "non-numeric interval",
			time:     "06:15",
			interval: "twice",
			wantLine: "06:15 */0 * * * /srv/rapture/run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := crontab.NewMemoryStore("")
			s := New(store, fixedDir(workDir))

			entry, err := s.Install(context.Background(), tt.time, ParseInterval(tt.interval))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLine, entry.String())
			assert.Equal(t, tt.wantLine+"\n", store.Content())
		})
	}
}

func TestInstall_AppendsToExistingCrontab(t *testing.T) {
	store := crontab.NewMemoryStore("MAILTO=admin\n0 1 * * * /bin/backup")
	s := New(store, fixedDir(workDir))

	_, err := s.Install(context.Background(), "09:30", 24)
	require.NoError(t, err)
	assert.Equal(t, "MAILTO=admin\n0 1 * * * /bin/backup\n09:30 * * * * /srv/rapture/run\n", store.Content())
}

func TestInstall_NoDeduplication(t *testing.T) {
	store := crontab.NewMemoryStore("")
	s := New(store, fixedDir(workDir))

	for range 2 {
		_, err := s.Install(context.Background(), "06:15", 12)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{
		"06:15 */12 * * * /srv/rapture/run",
		"06:15 */12 * * * /srv/rapture/run",
	}, crontab.Entries(store.Content()))
	assert.Equal(t, 2, store.Writes())
}

func TestInstall_PathResolutionFailure(t *testing.T) {
	store := crontab.NewMemoryStore("0 1 * * * /bin/backup\n")
	cause := errors.New("getwd: no such file or directory")
	s := New(store, WithWorkingDir(func() (string, error) { return "", cause }))

	_, err := s.Install(context.Background(), "09:30", 24)
	require.Error(t, err)

	var pathErr *PathResolutionError
	require.ErrorAs(t, err, &pathErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "0 1 * * * /bin/backup\n", store.Content())
	assert.Zero(t, store.Writes())
}

func TestInstall_PathResolutionFailureRunsNothing(t *testing.T) {
	rec := executor.NewRecorder()
	s := New(crontab.NewCommandStore(rec), WithWorkingDir(func() (string, error) {
		return "", errors.New("deleted")
	}))

	_, err := s.Install(context.Background(), "09:30", 24)
	var pathErr *PathResolutionError
	require.ErrorAs(t, err, &pathErr)
	assert.Empty(t, rec.Calls())
}

func TestInstall_CrontabWriteRejected(t *testing.T) {
	store := crontab.NewMemoryStore("0 1 * * * /bin/backup\n")
	store.WriteErr = errors.New("permission denied")
	s := New(store, fixedDir(workDir))

	entry, err := s.Install(context.Background(), "09:30", 24)
	require.Error(t, err)

	var installErr *CrontabInstallError
	require.ErrorAs(t, err, &installErr)
	assert.Equal(t, "09:30 * * * * /srv/rapture/run", installErr.Entry.String())
	assert.Equal(t, entry, installErr.Entry)
	assert.Equal(t, "0 1 * * * /bin/backup\n", store.Content())
}

func TestInstall_CrontabToolExitsNonZero(t *testing.T) {
	rec := executor.NewRecorder().
		On("crontab -l", executor.Output("0 1 * * * /bin/backup\n", 0)).
		On("crontab -", executor.ErrorOutput("crontab: you are not allowed to use this program\n", 1))
	s := New(crontab.NewCommandStore(rec), fixedDir(workDir))

	_, err := s.Install(context.Background(), "09:30", 24)

	var installErr *CrontabInstallError
	require.ErrorAs(t, err, &installErr)
	var writeErr *crontab.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, 1, writeErr.ExitCode)
}

func TestInstall_CrontabReadFailure(t *testing.T) {
	store := crontab.NewMemoryStore("")
	store.ReadErr = errors.New("crontab: executable file not found")
	s := New(store, fixedDir(workDir))

	_, err := s.Install(context.Background(), "09:30", 24)
	var installErr *CrontabInstallError
	require.ErrorAs(t, err, &installErr)
	assert.Zero(t, store.Writes())
}

func TestInstall_ThroughCrontabCommand(t *testing.T) {
	rec := executor.NewRecorder().
		On("crontab -l", executor.ErrorOutput("no crontab for rapture\n", 1))
	s := New(crontab.NewCommandStore(rec), fixedDir(workDir), WithLogger(logger.Discard()))

	_, err := s.Install(context.Background(), "18:00", 168)
	require.NoError(t, err)

	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "crontab -l", calls[0].Command.String())
	assert.Equal(t, "crontab -", calls[1].Command.String())
	assert.Equal(t, "18:00 * * * 0 /srv/rapture/run\n", calls[1].Stdin)
}

func TestPlan(t *testing.T) {
	s := New(crontab.NewMemoryStore(""), fixedDir(workDir), WithLauncher("run.sh"))

	entry, err := s.Plan(Request{TimeOfDay: "06:15", IntervalHours: 12})
	require.NoError(t, err)
	assert.Equal(t, "06:15 */12 * * * /srv/rapture/run.sh", entry.String())
}

func TestPlan_RelativeDirectoryIsMadeAbsolute(t *testing.T) {
	s := New(crontab.NewMemoryStore(""), fixedDir("relative/dir"))

	entry, err := s.Plan(Request{TimeOfDay: "06:15", IntervalHours: 12})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(entry.Command), "command %q should be absolute", entry.Command)
	assert.Equal(t, "run", filepath.Base(entry.Command))
}

func TestPlan_DefaultsToProcessWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	entry, err := New(crontab.NewMemoryStore("")).Plan(Request{TimeOfDay: "09:30", IntervalHours: 24})
	require.NoError(t, err)
	assert.Equal(t, "run", filepath.Base(entry.Command))
	assert.True(t, filepath.IsAbs(entry.Command))
}
