package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newFmtCommand(st *globalState) *cobra.Command {
	var write, check bool
	cmd := &cobra.Command{
		Use:   "fmt PATH...",
		Short: "Normalize line endings and trailing whitespace",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectScripts(st.fs, args, st.config.hasExtension)
			if err != nil {
				return err
			}
			return formatFiles(st.fs, st.stdout, files, write, check)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to source files instead of stdout")
	cmd.Flags().BoolVar(&check, "check", false, "fail if any source file needs formatting")
	return cmd
}

func formatFiles(fs afero.Fs, out io.Writer, files []string, write, check bool) error {
	changedCount := 0
	for _, path := range files {
		originalBytes, err := afero.ReadFile(fs, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		original := string(originalBytes)
		formatted := formatSource(original)
		changed := formatted != original
		if changed {
			changedCount++
		}

		switch {
		case write && changed:
			info, err := fs.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := afero.WriteFile(fs, path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		case check && changed:
			fmt.Fprintln(out, path)
		case !write && !check:
			fmt.Fprint(out, formatted)
		}
	}

	if check && changedCount > 0 {
		return fmt.Errorf("shelllite fmt: %d file(s) need formatting", changedCount)
	}
	return nil
}

// formatSource normalizes line endings, trims trailing whitespace and leaves
// exactly one trailing newline. Indentation is kept as written: the lexer
// counts a tab as one column.
func formatSource(source string) string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	joined := strings.Join(lines, "\n")
	joined = strings.TrimRight(joined, "\n")
	if joined == "" {
		return ""
	}
	return joined + "\n"
}
