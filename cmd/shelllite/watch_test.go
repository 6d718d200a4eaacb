package main

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevantEvent(t *testing.T) {
	ts := newTestState(t)
	ts.config.applyDefaults()

	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/w/a.shl", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/w/a.shl", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/w/a.shl", Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "/w/a.shl", Op: fsnotify.Remove}, false},
		{fsnotify.Event{Name: "/w/a.shl", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/w/a.txt", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/w/sub", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/w/sub", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ts.relevantEvent(tt.ev), "%v", tt.ev)
	}
}

func TestWatchLoopBatchesEvents(t *testing.T) {
	ts := newTestState(t)
	ts.config.applyDefaults()

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	batches := make(chan []string, 4)

	done := make(chan error, 1)
	go func() {
		done <- ts.watchLoop(context.Background(), events, errs, func(paths []string) {
			sort.Strings(paths)
			batches <- paths
		})
	}()

	events <- fsnotify.Event{Name: "/w/a.shl", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "/w/a.shl", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "/w/b.shl", Op: fsnotify.Create}
	events <- fsnotify.Event{Name: "/w/notes.txt", Op: fsnotify.Write}
	errs <- errors.New("overflow")

	select {
	case batch := <-batches:
		assert.Equal(t, []string{"/w/a.shl", "/w/b.shl"}, batch)
	case <-time.After(5 * time.Second):
		t.Fatalf("no batch delivered")
	}

	events <- fsnotify.Event{Name: "/w/c.shl", Op: fsnotify.Write}
	close(events)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"/w/c.shl"}, <-batches)
	assert.Contains(t, ts.stderr.String(), "overflow")
}

func TestWatchLoopStopsOnCancel(t *testing.T) {
	ts := newTestState(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ts.watchLoop(ctx, make(chan fsnotify.Event), make(chan error), func([]string) {
		t.Fatalf("unexpected batch")
	})
	require.NoError(t, err)
}

func TestRecheckReportsResults(t *testing.T) {
	ts := newTestState(t)
	ts.config.applyDefaults()
	ts.writeFile(t, "/w/a.shl", "say 1\n")
	ts.writeFile(t, "/w/b.shl", "say (\n")

	ts.recheck(context.Background(), []string{"/w/a.shl"}, checkOptions{jobs: 1})
	assert.Equal(t, "ok: 1 file(s)\n", ts.stdout.String())

	ts.stdout.Reset()
	ts.recheck(context.Background(), []string{"/w/b.shl", "/w/gone.shl"}, checkOptions{jobs: 1})
	assert.Contains(t, ts.stdout.String(), "/w/b.shl: syntax error on line 1")
	assert.Contains(t, ts.stdout.String(), "check found errors in 1 of 1 file(s)")

	ts.stdout.Reset()
	ts.recheck(context.Background(), []string{"/w"}, checkOptions{jobs: 2})
	assert.Contains(t, ts.stdout.String(), "check found errors in 1 of 2 file(s)")
}
