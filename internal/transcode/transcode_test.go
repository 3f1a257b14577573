package transcode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/rapture/internal/config"
	"github.com/aatumaykin/rapture/internal/executor"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Paths = config.PathsConfig{
		InputDir:   "/media/trans_in",
		OutputDir:  "/media/trans_out",
		MoviesDir:  "/media/movies",
		TVShowsDir: "/media/tv shows",
	}
	return cfg
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   string
	}{
		{
			name:   "defaults",
			mutate: func(c *config.Config) {},
			want:   "python3 run_transcode.py --input /media/trans_in --output /media/trans_out --codec x264 --crf 18",
		},
		{
			name: "media detection",
			mutate: func(c *config.Config) {
				c.MediaDetection.Enabled = true
				c.MediaDetection.OMDbAPIKey = "k3y-12345"
			},
			want: "python3 run_transcode.py --input /media/trans_in --output /media/trans_out --codec x264 --crf 18" +
				" --use-media-detection --api-key k3y-12345 --movies-dir /media/movies --tv-shows-dir '/media/tv shows'",
		},
		{
			name: "delete original with custom codec",
			mutate: func(c *config.Config) {
				c.Transcode.Codec = "x265"
				c.Transcode.Quality = 22
				c.Transcode.DeleteOriginal = true
			},
			want: "python3 run_transcode.py --input /media/trans_in --output /media/trans_out --codec x265 --crf 22 --delete-original",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			assert.Equal(t, tt.want, NewLauncher(executor.NewRecorder(), cfg, nil).Command().String())
		})
	}
}

func TestCommand_MasksAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.MediaDetection.Enabled = true
	cfg.MediaDetection.OMDbAPIKey = "k3y-12345"

	masked := NewLauncher(executor.NewRecorder(), cfg, nil).Command().Masked()
	assert.NotContains(t, masked, "k3y-12345")
	assert.Contains(t, masked, "--api-key ***")
}

func TestRun(t *testing.T) {
	rec := executor.NewRecorder()
	require.NoError(t, NewLauncher(rec, testConfig(), nil).Run(context.Background()))
	require.Len(t, rec.Calls(), 1)
	assert.Equal(t, "python3", rec.Calls()[0].Command.Name)
}

func TestRun_NonZeroExit(t *testing.T) {
	rec := executor.NewRecorder().On("python3", executor.Exit(1))

	err := NewLauncher(rec, testConfig(), nil).Run(context.Background())

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode)
}

func TestRun_StartFailure(t *testing.T) {
	rec := executor.NewRecorder().On("python3", executor.Fail(errors.New("not found")))

	err := NewLauncher(rec, testConfig(), nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start transcoding")
}
