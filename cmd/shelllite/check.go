package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shelllite/shelllite/lite"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCheckCommand(st *globalState) *cobra.Command {
	var (
		compare bool
		jobs    int
	)
	cmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Parse scripts and report syntax errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("jobs") {
				if jobs <= 0 {
					return fmt.Errorf("--jobs must be positive, got %d", jobs)
				}
			} else {
				jobs = st.config.Jobs
			}
			files, err := collectScripts(st.fs, args, st.config.hasExtension)
			if err != nil {
				return err
			}
			return st.check(cmd.Context(), files, checkOptions{compare: compare, jobs: jobs})
		},
	}
	cmd.Flags().BoolVar(&compare, "compare", false, "parse with both parsers and fail if they disagree")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of files parsed in parallel (default from config, else CPU count)")
	return cmd
}

type checkOptions struct {
	compare bool
	jobs    int
}

type checkResult struct {
	path    string
	source  string
	err     error
	elapsed time.Duration
}

// check parses every file with at most opts.jobs goroutines, then reports the
// failures in file order.
func (st *globalState) check(ctx context.Context, files []string, opts checkOptions) error {
	f, err := st.frontend()
	if err != nil {
		return err
	}

	results := make([]checkResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			source, err := st.readSource(path)
			if err != nil {
				return err
			}
			results[i] = checkFile(f, path, source, opts.compare)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := reportResults(st.stdout, st.logger, results)
	if failed > 0 {
		return fmt.Errorf("check found errors in %d of %d file(s)", failed, len(files))
	}
	st.logger.WithField("files", len(files)).Info("check passed")
	return nil
}

func checkFile(f *lite.Frontend, path, source string, compare bool) checkResult {
	start := time.Now()
	var err error
	if compare {
		_, err = f.Compare(source)
	} else {
		_, err = f.Parse(source)
	}
	return checkResult{path: path, source: source, err: err, elapsed: time.Since(start)}
}

func reportResults(w io.Writer, logger logrus.FieldLogger, results []checkResult) int {
	failed := 0
	for _, res := range results {
		entry := logger.WithFields(logrus.Fields{"path": res.path, "elapsed": res.elapsed})
		if res.err == nil {
			entry.Debug("ok")
			continue
		}
		failed++
		if errors.Is(res.err, lite.ErrParsersDisagree) {
			entry.WithError(res.err).Warn("parsers disagree")
		}
		fmt.Fprintln(w, (&sourceError{Path: res.path, Source: res.source, Err: res.err}).Error())
	}
	return failed
}
