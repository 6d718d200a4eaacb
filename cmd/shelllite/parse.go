package main

import (
	"github.com/shelllite/shelllite/lite"
	"github.com/spf13/cobra"
)

func newParseCommand(st *globalState) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of a script as YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = st.config.Format
			}
			path := args[0]
			source, err := st.readSource(path)
			if err != nil {
				return err
			}
			f, err := st.frontend()
			if err != nil {
				return err
			}
			program, err := f.Parse(source)
			if err != nil {
				return &sourceError{Path: path, Source: source, Err: err}
			}
			out, err := lite.MarshalProgram(program.Statements, format)
			if err != nil {
				return err
			}
			_, err = st.stdout.Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}
