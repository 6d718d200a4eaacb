package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces the burst of events editors emit for one save.
const watchDebounce = 100 * time.Millisecond

func newWatchCommand(st *globalState) *cobra.Command {
	var compare bool
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Re-check scripts whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.watch(cmd.Context(), args[0], checkOptions{compare: compare, jobs: st.config.Jobs})
		},
	}
	cmd.Flags().BoolVar(&compare, "compare", false, "parse with both parsers and fail if they disagree")
	return cmd
}

func (st *globalState) watch(ctx context.Context, dir string, opts checkOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	err = afero.Walk(st.fs, dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	st.recheck(ctx, []string{dir}, opts)
	st.logger.WithField("dir", dir).Info("watching for changes")

	return st.watchLoop(ctx, watcher.Events, watcher.Errors, func(paths []string) {
		for _, path := range paths {
			if info, err := st.fs.Stat(path); err == nil && info.IsDir() {
				if err := watcher.Add(path); err != nil {
					st.logger.WithError(err).WithField("dir", path).Warn("cannot watch new directory")
				}
			}
		}
		st.recheck(ctx, paths, opts)
	})
}

// watchLoop batches relevant events and hands each batch to onChange once the
// burst settles. It returns when ctx is done or a channel closes.
func (st *globalState) watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, onChange func([]string)) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		paths := make([]string, 0, len(pending))
		for path := range pending {
			paths = append(paths, path)
		}
		clear(pending)
		onChange(paths)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				flush()
				return nil
			}
			if !st.relevantEvent(ev) {
				continue
			}
			st.logger.WithField("path", ev.Name).WithField("op", ev.Op.String()).Debug("change")
			pending[ev.Name] = struct{}{}
			timer.Reset(watchDebounce)
		case err, ok := <-errs:
			if !ok {
				flush()
				return nil
			}
			st.logger.WithError(err).Warn("watch error")
		case <-timer.C:
			flush()
		}
	}
}

func (st *globalState) relevantEvent(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	if filepath.Ext(ev.Name) == "" {
		// Possibly a new directory; let the handler decide.
		return ev.Op.Has(fsnotify.Create)
	}
	return st.config.hasExtension(ev.Name)
}

// recheck checks the scripts under paths that still exist and prints the
// outcome. Failures are reported, not returned, so watching continues.
func (st *globalState) recheck(ctx context.Context, paths []string, opts checkOptions) {
	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if ok, _ := afero.Exists(st.fs, path); ok {
			existing = append(existing, path)
		}
	}
	files, err := collectScripts(st.fs, existing, st.config.hasExtension)
	if err != nil {
		st.logger.WithError(err).Warn("collect scripts")
		return
	}
	files = filterScripts(files, st.config.hasExtension)
	if len(files) == 0 {
		return
	}
	if err := st.check(ctx, files, opts); err != nil {
		fmt.Fprintln(st.stdout, err)
		return
	}
	fmt.Fprintf(st.stdout, "ok: %d file(s)\n", len(files))
}

func filterScripts(files []string, match func(string) bool) []string {
	out := files[:0]
	for _, file := range files {
		if match(file) {
			out = append(out, file)
		}
	}
	return out
}
