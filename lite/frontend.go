package lite

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrParsersDisagree is returned by Compare when the two parsers produce
// different results for the same tokens.
var ErrParsersDisagree = errors.New("parsers disagree")

// ParserKind selects the parser used by a Frontend.
type ParserKind string

const (
	ParserRD  ParserKind = "rd"
	ParserGBP ParserKind = "gbp"
)

func (k ParserKind) String() string { return string(k) }

// ParseParserKind accepts the short names and their long spellings.
func ParseParserKind(name string) (ParserKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rd", "recursive-descent", "recursive":
		return ParserRD, nil
	case "gbp", "geometric", "geometric-binding":
		return ParserGBP, nil
	}
	return "", fmt.Errorf("unknown parser %q (want rd or gbp)", name)
}

// Config controls which parser runs and how deep input may nest.
type Config struct {
	Parser   ParserKind
	MaxDepth int
	Logger   logrus.FieldLogger
}

// Frontend tokenizes and parses ShellLite source with a fixed configuration.
// It holds no per-call state and is safe for concurrent use.
type Frontend struct {
	config Config
}

// NewFrontend validates cfg and fills in defaults.
func NewFrontend(cfg Config) (*Frontend, error) {
	if cfg.Parser == "" {
		cfg.Parser = ParserRD
	}
	kind, err := ParseParserKind(string(cfg.Parser))
	if err != nil {
		return nil, err
	}
	cfg.Parser = kind

	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must be positive, got %d", cfg.MaxDepth)
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		cfg.Logger = logger
	}
	return &Frontend{config: cfg}, nil
}

// MustNewFrontend is like NewFrontend but panics on an invalid Config.
func MustNewFrontend(cfg Config) *Frontend {
	f, err := NewFrontend(cfg)
	if err != nil {
		panic(err)
	}
	return f
}

// Config returns the effective configuration.
func (f *Frontend) Config() Config { return f.config }

func (f *Frontend) Tokenize(source string) ([]Token, error) {
	start := time.Now()
	tokens, err := Tokenize(source)
	if err != nil {
		f.config.Logger.WithError(err).Debug("tokenize failed")
		return nil, err
	}
	f.config.Logger.WithFields(logrus.Fields{
		"tokens":  len(tokens),
		"elapsed": time.Since(start),
	}).Debug("tokenized")
	return tokens, nil
}

// Parse tokenizes source and parses it with the configured parser.
func (f *Frontend) Parse(source string) (*Program, error) {
	tokens, err := f.Tokenize(source)
	if err != nil {
		return nil, err
	}
	stmts, err := f.ParseTokens(tokens)
	if err != nil {
		return nil, err
	}
	return &Program{Statements: stmts, Parser: f.config.Parser}, nil
}

func (f *Frontend) ParseTokens(tokens []Token) ([]Statement, error) {
	return f.parseWith(f.config.Parser, tokens)
}

func (f *Frontend) parseWith(kind ParserKind, tokens []Token) ([]Statement, error) {
	logger := f.config.Logger.WithField("parser", kind)
	start := time.Now()

	var (
		stmts []Statement
		err   error
	)
	if kind == ParserGBP {
		stmts, err = parseGeometric(tokens, f.config.MaxDepth)
	} else {
		stmts, err = parseRecursiveDescent(tokens, f.config.MaxDepth)
	}
	if err != nil {
		logger.WithError(err).Debug("parse failed")
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"tokens":     len(tokens),
		"statements": len(stmts),
		"elapsed":    time.Since(start),
	}).Debug("parsed")
	return stmts, nil
}

// Compare parses source with both parsers and checks that they agree, either
// on the same tree or on the same error. The returned program is the one built
// by the configured parser.
func (f *Frontend) Compare(source string) (*Program, error) {
	tokens, err := f.Tokenize(source)
	if err != nil {
		return nil, err
	}
	rd, rdErr := f.parseWith(ParserRD, tokens)
	gbp, gbpErr := f.parseWith(ParserGBP, tokens)

	switch {
	case rdErr != nil && gbpErr != nil:
		if rdErr.Error() != gbpErr.Error() {
			return nil, fmt.Errorf("%w: rd: %v; gbp: %v", ErrParsersDisagree, rdErr, gbpErr)
		}
		return nil, rdErr
	case rdErr != nil:
		return nil, fmt.Errorf("%w: only rd failed: %v", ErrParsersDisagree, rdErr)
	case gbpErr != nil:
		return nil, fmt.Errorf("%w: only gbp failed: %v", ErrParsersDisagree, gbpErr)
	}

	if i, ok := firstDifference(rd, gbp); !ok {
		line := 0
		if i < len(rd) {
			line = rd[i].Line()
		} else if i < len(gbp) {
			line = gbp[i].Line()
		}
		return nil, fmt.Errorf("%w: statement %d (line %d)", ErrParsersDisagree, i+1, line)
	}

	stmts := rd
	if f.config.Parser == ParserGBP {
		stmts = gbp
	}
	return &Program{Statements: stmts, Parser: f.config.Parser}, nil
}

// firstDifference returns the index of the first top-level statement that
// differs, and false, or reports true when the lists are deeply equal.
func firstDifference(a, b []Statement) (int, bool) {
	for i := 0; i < len(a) && i < len(b); i++ {
		if !reflect.DeepEqual(a[i], b[i]) {
			return i, false
		}
	}
	if len(a) != len(b) {
		return min(len(a), len(b)), false
	}
	return 0, true
}
