package crontab

import (
	"context"
	"errors"
	"testing"

	"github.com/aatumaykin/rapture/internal/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		line     string
		want     string
	}{
		{
			name:     "empty crontab",
			existing: "",
			line:     "09:30 * * * * /srv/run",
			want:     "09:30 * * * * /srv/run\n",
		},
		{
			name:     "existing with trailing newline",
			existing: "0 1 * * * /bin/backup\n",
			line:     "09:30 * * * * /srv/run",
			want:     "0 1 * * * /bin/backup\n09:30 * * * * /srv/run\n",
		},
		{
			name:     "existing without trailing newline",
			existing: "0 1 * * * /bin/backup",
			line:     "09:30 * * * * /srv/run",
			want:     "0 1 * * * /bin/backup\n09:30 * * * * /srv/run\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Append(tt.existing, tt.line))
		})
	}
}

func TestEntries(t *testing.T) {
	content := "# m h dom mon dow command\n\n0 1 * * * /bin/backup\n  09:30 * * * * /srv/run  \n"
	assert.Equal(t, []string{"0 1 * * * /bin/backup", "09:30 * * * * /srv/run"}, Entries(content))
	assert.Empty(t, Entries(""))
}

func TestCommandStore_Read(t *testing.T) {
	rec := executor.NewRecorder().On("crontab -l", executor.Output("0 1 * * * /bin/backup\n", 0))
	store := NewCommandStore(rec)

	content, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0 1 * * * /bin/backup\n", content)
	assert.Equal(t, []string{"crontab -l"}, rec.Lines())
}

func TestCommandStore_ReadMissingCrontab(t *testing.T) {
	rec := executor.NewRecorder().On("crontab -l", executor.ErrorOutput("no crontab for user\n", 1))

	content, err := NewCommandStore(rec).Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestCommandStore_ReadStartFailure(t *testing.T) {
	rec := executor.NewRecorder().On("crontab", executor.Fail(errors.New("executable file not found")))

	_, err := NewCommandStore(rec).Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read crontab")
}

func TestCommandStore_Write(t *testing.T) {
	rec := executor.NewRecorder()
	store := NewCommandStore(rec)

	require.NoError(t, store.Write(context.Background(), "09:30 * * * * /srv/run\n"))

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "crontab -", calls[0].Command.String())
	assert.Equal(t, "09:30 * * * * /srv/run\n", calls[0].Stdin)
}

func TestCommandStore_WriteRejected(t *testing.T) {
	rec := executor.NewRecorder().On("crontab -", executor.ErrorOutput("crontab: installing new crontab\n\"-\":1: bad minute\n", 1))

	err := NewCommandStore(rec).Write(context.Background(), "09:30 * * * * /srv/run\n")
	require.Error(t, err)

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, 1, writeErr.ExitCode)
	assert.Contains(t, writeErr.Stderr, "bad minute")
	assert.Contains(t, err.Error(), "exited with code 1")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("0 1 * * * /bin/backup\n")
	ctx := context.Background()

	content, err := store.Read(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, Append(content, "x")))
	assert.Equal(t, "0 1 * * * /bin/backup\nx\n", store.Content())
	assert.Equal(t, 1, store.Writes())

	store.WriteErr = errors.New("denied")
	assert.Error(t, store.Write(ctx, ""))
	assert.Equal(t, 1, store.Writes())
}
