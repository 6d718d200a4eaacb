package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/shelllite/shelllite/lite"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := newGlobalState(ctx)
	if err := runCLI(st, os.Args[1:]); err != nil {
		fmt.Fprintln(st.stderr, err)
		stop()
		os.Exit(1)
	}
}

// globalState is shared by every command. Tests swap the filesystem and the
// standard streams.
type globalState struct {
	ctx    context.Context
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *logrus.Logger

	flags  globalFlags
	config fileConfig
}

type globalFlags struct {
	configPath string
	parser     string
	maxDepth   int
	logLevel   string
	logFormat  string
}

func newGlobalState(ctx context.Context) *globalState {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	return &globalState{
		ctx:    ctx,
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
	}
}

func runCLI(st *globalState, args []string) error {
	root := newRootCommand(st)
	root.SetArgs(args)
	root.SetIn(st.stdin)
	root.SetOut(st.stdout)
	root.SetErr(st.stderr)
	return root.ExecuteContext(st.ctx)
}

func newRootCommand(st *globalState) *cobra.Command {
	root := &cobra.Command{
		Use:           "shelllite",
		Short:         "ShellLite front end: tokenize, parse and check ShellLite scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.setup(cmd.Flags())
		},
	}
	root.PersistentFlags().AddFlagSet(rootCmdPersistentFlagSet(&st.flags))

	root.AddCommand(
		newTokensCommand(st),
		newParseCommand(st),
		newCheckCommand(st),
		newFmtCommand(st),
		newAnalyzeCommand(st),
		newWatchCommand(st),
		newLSPCommand(st),
		newREPLCommand(st),
	)
	return root
}

func rootCmdPersistentFlagSet(flags *globalFlags) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("", pflag.ContinueOnError)
	flagSet.StringVarP(&flags.configPath, "config", "c", "", "config file (default .shelllite.toml or .shelllite.yaml)")
	flagSet.StringVar(&flags.parser, "parser", "", "parser to use: rd or gbp")
	flagSet.IntVar(&flags.maxDepth, "max-depth", 0, "maximum nesting depth accepted by the parsers")
	flagSet.StringVar(&flags.logLevel, "log-level", "", "log level: panic, fatal, error, warning, info, debug or trace")
	flagSet.StringVar(&flags.logFormat, "log-format", "", "log output format: text or json")
	return flagSet
}

// setup loads the config file, lets explicit flags override it and configures
// the logger.
func (st *globalState) setup(flags *pflag.FlagSet) error {
	cfg, path, err := loadConfig(st.fs, st.flags.configPath)
	if err != nil {
		return err
	}
	if flags.Changed("parser") {
		cfg.Parser = st.flags.parser
	}
	if flags.Changed("max-depth") {
		if st.flags.maxDepth <= 0 {
			return fmt.Errorf("--max-depth must be positive, got %d", st.flags.maxDepth)
		}
		cfg.MaxDepth = st.flags.maxDepth
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = st.flags.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = st.flags.logFormat
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return err
	}
	st.config = cfg

	st.setupLogger()
	if path != "" {
		st.logger.WithField("path", path).Debug("loaded config")
	}
	return nil
}

func (st *globalState) setupLogger() {
	st.logger.SetOutput(st.stderr)
	level, _ := logrus.ParseLevel(st.config.LogLevel)
	st.logger.SetLevel(level)
	switch st.config.LogFormat {
	case "json":
		st.logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		st.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
}

func (st *globalState) parserKind() lite.ParserKind {
	kind, _ := lite.ParseParserKind(st.config.Parser)
	return kind
}

func (st *globalState) frontend() (*lite.Frontend, error) {
	return st.frontendFor(st.parserKind())
}

func (st *globalState) frontendFor(kind lite.ParserKind) (*lite.Frontend, error) {
	return lite.NewFrontend(lite.Config{
		Parser:   kind,
		MaxDepth: st.config.MaxDepth,
		Logger:   st.logger,
	})
}

func (st *globalState) readSource(path string) (string, error) {
	data, err := afero.ReadFile(st.fs, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// sourceError renders a lexer or parser error with the file name and a code
// frame of the offending line.
type sourceError struct {
	Path   string
	Source string
	Err    error
}

func (e *sourceError) Error() string {
	return e.Path + ": " + lite.FormatError(e.Err, e.Source)
}

func (e *sourceError) Unwrap() error { return e.Err }
