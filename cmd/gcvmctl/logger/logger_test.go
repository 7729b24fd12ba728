package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInitDisabledDiscards(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: false, Stderr: &buf}))

	Error("dropped")
	require.Empty(t, buf.String())
}

func TestInitStderr(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Level: slog.LevelDebug, Stderr: &buf}))
	t.Cleanup(func() { _ = Init(Options{}) })

	Debug("gc cycle", "reclaimed", 3)
	require.Contains(t, buf.String(), `msg="gc cycle"`)
	require.Contains(t, buf.String(), "reclaimed=3")
}

func TestInitLogDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Options{Enabled: true, LogDir: dir}))
	t.Cleanup(func() { _ = Init(Options{}) })

	Info("hello", "n", 1)
	name := filepath.Join(dir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"hello"`)
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	old := logPrefix + "2026-01-01" + logSuffix
	recent := logPrefix + "2026-02-20" + logSuffix
	other := "notes.txt"
	for _, name := range []string{old, recent, other} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	cleanOldLogs(dir, now)

	_, err := os.Stat(filepath.Join(dir, old))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, recent))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, other))
	require.NoError(t, err)
}

func TestCloseReleasesLogFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Options{Enabled: true, LogDir: dir}))
	require.NotNil(t, file)
	f := file

	Info("before close")
	require.NoError(t, Close())
	require.Nil(t, file)
	require.NoError(t, Close(), "second Close is a no-op")

	_, err := f.Write([]byte("x"))
	require.ErrorIs(t, err, os.ErrClosed)

	// L discards after Close, so this must not reach the file.
	Info("after close")
	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	require.Contains(t, string(data), "before close")
	require.NotContains(t, string(data), "after close")
}

func TestInitClosesPreviousLogFile(t *testing.T) {
	require.NoError(t, Init(Options{Enabled: true, LogDir: t.TempDir()}))
	first := file

	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Stderr: &buf}))
	t.Cleanup(func() { _ = Close() })

	require.Nil(t, file)
	_, err := first.Write([]byte("x"))
	require.ErrorIs(t, err, os.ErrClosed)
}
