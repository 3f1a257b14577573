package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/rapture/internal/config"
	"github.com/aatumaykin/rapture/internal/crontab"
	"github.com/aatumaykin/rapture/internal/executor"
	"github.com/aatumaykin/rapture/internal/logger"
	"github.com/aatumaykin/rapture/internal/menu"
	"github.com/aatumaykin/rapture/internal/prompt"
)

func fixedDir(dir string) func() (string, error) {
	return func() (string, error) { return dir, nil }
}

func newTestApp(t *testing.T, opts ...Option) (*App, *executor.Recorder, *crontab.MemoryStore) {
	t.Helper()

	cfg := config.Default()
	rec := executor.NewRecorder()
	store := crontab.NewMemoryStore("")

	all := append([]Option{
		WithRunner(rec),
		WithFs(afero.NewMemMapFs()),
		WithCrontab(store),
		WithWorkingDir(fixedDir("/opt/rapture")),
		WithOutput(&bytes.Buffer{}),
	}, opts...)

	a := New(cfg, logger.Discard(), all...)
	require.NoError(t, a.Initialize(context.Background()))
	return a, rec, store
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	a := New(cfg, logger.Discard())

	assert.Same(t, cfg, a.Config())
	assert.Nil(t, a.Synthesizer())
	assert.Nil(t, a.Metrics())
}

func TestInitialize(t *testing.T) {
	a, _, _ := newTestApp(t)

	assert.NotNil(t, a.Synthesizer())
	assert.NotNil(t, a.Metrics())
	assert.NotNil(t, a.services.Transcoder)
	assert.NotNil(t, a.services.Checker)
	assert.NotNil(t, a.services.Installer)
	assert.NotNil(t, a.services.Viewer)
	assert.NotNil(t, a.services.Scheduler)
}

func TestInitialize_Twice(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := a.Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestInitialize_NilConfig(t *testing.T) {
	a := New(nil, logger.Discard())

	err := a.Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration is required")
}

func TestInitialize_NilLogger(t *testing.T) {
	a := New(config.Default(), nil,
		WithRunner(executor.NewRecorder()),
		WithCrontab(crontab.NewMemoryStore("")))

	require.NoError(t, a.Initialize(context.Background()))
	assert.NotNil(t, a.logger)
}

func TestSynthesizer_UsesConfiguredLauncher(t *testing.T) {
	cfg := config.Default()
	cfg.Schedule.Launcher = "launch.sh"
	store := crontab.NewMemoryStore("")

	a := New(cfg, logger.Discard(),
		WithRunner(executor.NewRecorder()),
		WithFs(afero.NewMemMapFs()),
		WithCrontab(store),
		WithWorkingDir(fixedDir("/srv/media")))
	require.NoError(t, a.Initialize(context.Background()))

	entry, err := a.Synthesizer().Install(context.Background(), "30", 24)
	require.NoError(t, err)
	assert.Equal(t, "30 * * * * /srv/media/launch.sh", entry.String())
	assert.Equal(t, "30 * * * * /srv/media/launch.sh\n", store.Content())
}

func TestMenu_ScheduleFlow(t *testing.T) {
	a, _, store := newTestApp(t)

	in := strings.NewReader("5\n02:00\n168\n6\n")
	var out bytes.Buffer
	m := a.Menu(prompt.NewLinePrompter(in, &out), &out)

	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, "02:00 * * * 0 /opt/rapture/run\n", store.Content())
	assert.Contains(t, out.String(), "Task scheduled successfully to run at 02:00, every 168 hours.")
}

func TestMenu_DispatchTranscode(t *testing.T) {
	a, rec, _ := newTestApp(t)

	var out bytes.Buffer
	m := a.Menu(prompt.NewLinePrompter(strings.NewReader(""), &out), &out)

	require.NoError(t, m.Dispatch(context.Background(), menu.ActionTranscode))
	require.Len(t, rec.Calls(), 1)
	assert.Equal(t, a.Config().Transcode.Interpreter, rec.Calls()[0].Command.Name)
}

func TestMenu_DispatchLogsMissing(t *testing.T) {
	a, rec, _ := newTestApp(t)

	var out bytes.Buffer
	m := a.Menu(prompt.NewLinePrompter(strings.NewReader(""), &out), &out)

	err := m.Dispatch(context.Background(), menu.ActionLogs)
	require.Error(t, err)
	assert.Empty(t, rec.Calls())
}

func TestMenu_DispatchCrontabFailure(t *testing.T) {
	cfg := config.Default()
	store := crontab.NewMemoryStore("")
	store.WriteErr = errors.New("crontab: permission denied")

	a := New(cfg, logger.Discard(),
		WithRunner(executor.NewRecorder()),
		WithFs(afero.NewMemMapFs()),
		WithCrontab(store),
		WithWorkingDir(fixedDir("/opt/rapture")))
	require.NoError(t, a.Initialize(context.Background()))

	var out bytes.Buffer
	in := strings.NewReader("10\n6\n")
	m := a.Menu(prompt.NewLinePrompter(in, &out), &out)

	err := m.Dispatch(context.Background(), menu.ActionSchedule)
	require.Error(t, err)
	assert.Empty(t, store.Content())
}

func TestClose_WritesTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rapture.prom")
	cfg := config.Default()
	cfg.Metrics.TextfilePath = path

	a := New(cfg, logger.Discard(),
		WithRunner(executor.NewRecorder()),
		WithFs(afero.NewMemMapFs()),
		WithCrontab(crontab.NewMemoryStore("")),
		WithWorkingDir(fixedDir("/opt/rapture")))
	require.NoError(t, a.Initialize(context.Background()))

	a.Metrics().CrontabEntryInstalled()

	require.NoError(t, a.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rapture_crontab_entries_installed_total 1")
}

func TestClose_NotInitialized(t *testing.T) {
	a := New(config.Default(), logger.Discard())
	assert.NoError(t, a.Close())
}
