// ABOUTME: Tests for the coven-notes CLI wiring
// ABOUTME: Runs commands and the shell against a temporary SQLite database

package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/coven-notes/internal/config"
	"github.com/2389/coven-notes/internal/notes"
	"github.com/2389/coven-notes/internal/store"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := config.Default(filepath.Join(t.TempDir(), "notes.db"))

	a, err := openApp(context.Background(), cfg, &out, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, &out
}

func TestOpenApp_MigratesAndLoads(t *testing.T) {
	a, out := newTestApp(t)

	assert.Equal(t, store.TargetVersion, a.version)
	require.NoError(t, a.run(context.Background(), "migrate", nil, nil))
	assert.Equal(t, "schema version 1\n", out.String())
}

func TestOpenApp_CorruptDatabaseRefusesToStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not a database "), 512), 0644))

	a, err := openApp(context.Background(), config.Default(path), &bytes.Buffer{}, nil)
	require.Error(t, err)
	assert.Nil(t, a)

	// Depending on the driver the file is rejected when connecting or when reading the version
	var merr *store.MigrationError
	var serr *store.StorageError
	assert.True(t, errors.As(err, &merr) || errors.As(err, &serr), "unexpected error type %T: %v", err, err)
}

func TestCommands_AddListShareDelete(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.run(ctx, "add", []string{"Groceries", "Milk, eggs"}, nil))
	assert.Contains(t, out.String(), "Created note #1")

	out.Reset()
	require.NoError(t, a.run(ctx, "list", nil, nil))
	assert.Contains(t, out.String(), "You have 1 note(s)")
	assert.Contains(t, out.String(), "Groceries")
	assert.Contains(t, out.String(), "Milk, eggs")

	out.Reset()
	require.NoError(t, a.run(ctx, "share", []string{"1"}, nil))
	assert.Equal(t, "Groceries\n\nMilk, eggs\n", out.String())

	out.Reset()
	require.NoError(t, a.run(ctx, "delete", []string{"1"}, nil))
	require.NoError(t, a.run(ctx, "delete", []string{"1"}, nil))
	require.NoError(t, a.run(ctx, "count", nil, nil))
	assert.True(t, strings.HasSuffix(out.String(), "0\n"), out.String())
}

func TestCommands_Errors(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	err := a.run(ctx, "add", []string{" ", "body"}, nil)
	require.ErrorIs(t, err, store.ErrInvalidNote)
	assert.Contains(t, err.Error(), "please enter both a title and a note")

	err = a.run(ctx, "edit", []string{"9", "t", "d"}, nil)
	require.ErrorIs(t, err, store.ErrNotFound)

	err = a.run(ctx, "share", []string{"9"}, nil)
	require.ErrorIs(t, err, store.ErrNotFound)

	assert.Error(t, a.run(ctx, "delete", []string{"abc"}, nil))
	assert.Error(t, a.run(ctx, "add", []string{"only-title"}, nil))
	assert.Error(t, a.run(ctx, "bogus", nil, nil))
}

func newMockApp(t *testing.T, ms *store.MockStore) (*app, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	svc := notes.NewService(ms, logger)
	require.NoError(t, svc.Load(context.Background()))

	a := &app{store: ms, svc: svc, version: store.TargetVersion, out: &out, logger: logger}
	t.Cleanup(a.Close)
	return a, &out
}

func TestCommands_StaleListAfterMutation(t *testing.T) {
	ms := store.NewMockStore()
	a, out := newMockApp(t, ms)
	ctx := context.Background()

	ms.FailNext(store.OpList, errors.New("disk I/O error"))
	err := a.run(ctx, "add", []string{"Groceries", "Milk"}, nil)
	assert.Contains(t, out.String(), "Created note #1")

	var rerr *notes.RefreshError
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, err.Error(), "saved, but the note list could not be reloaded")
	assert.Equal(t, 0, a.svc.Count(), "list stays at the last successful refresh")

	out.Reset()
	ms.FailNext(store.OpList, errors.New("disk I/O error"))
	err = a.run(ctx, "edit", []string{"1", "Groceries", "Milk, eggs"}, nil)
	assert.Contains(t, out.String(), "Updated note #1")
	require.ErrorAs(t, err, &rerr)

	out.Reset()
	ms.FailNext(store.OpList, errors.New("disk I/O error"))
	err = a.run(ctx, "delete", []string{"1"}, nil)
	assert.Contains(t, out.String(), "Deleted note #1")
	require.ErrorAs(t, err, &rerr)

	count, err := ms.CountNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestShell_Session(t *testing.T) {
	a, out := newTestApp(t)

	input := strings.Join([]string{
		"add",
		"Groceries",
		"Milk, eggs",
		"edit 1",
		"",
		"Milk, eggs, bread",
		"add",
		"",
		"body",
		"list",
		"quit",
	}, "\n") + "\n"

	require.NoError(t, a.shell(context.Background(), strings.NewReader(input)))

	got := out.String()
	assert.Contains(t, got, "You have 0 note(s)")
	assert.Contains(t, got, "Created note #1")
	assert.Contains(t, got, "(1 note(s))")
	assert.Contains(t, got, "Title [Groceries]: ")
	assert.Contains(t, got, "Updated note #1")
	assert.Contains(t, got, "please enter both a title and a note")
	assert.Contains(t, got, "Milk, eggs, bread")

	notes := a.svc.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, store.Note{ID: 1, Title: "Groceries", Description: "Milk, eggs, bread"}, notes[0])
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short"))
	assert.Equal(t, "first …", preview("first\nsecond"))
	assert.Equal(t, strings.Repeat("x", previewWidth)+"…", preview(strings.Repeat("x", previewWidth+5)))
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := setupLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "id", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = setupLogger(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)
	logger.With("component", "store").Debug("opened", "path", "x.db")
	assert.Contains(t, buf.String(), "opened")
	assert.Contains(t, buf.String(), "component=")
	assert.Contains(t, buf.String(), "path=")
}
