package lite

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewFrontendDefaults(t *testing.T) {
	f, err := NewFrontend(Config{})
	if err != nil {
		t.Fatalf("new frontend: %v", err)
	}
	cfg := f.Config()
	if cfg.Parser != ParserRD {
		t.Fatalf("expected rd by default, got %s", cfg.Parser)
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Fatalf("expected default depth %d, got %d", DefaultMaxDepth, cfg.MaxDepth)
	}
	if cfg.Logger == nil {
		t.Fatalf("expected a discard logger")
	}
}

func TestNewFrontendRejectsInvalidConfig(t *testing.T) {
	if _, err := NewFrontend(Config{Parser: "lalr"}); err == nil {
		t.Fatalf("expected unknown parser to be rejected")
	}
	if _, err := NewFrontend(Config{MaxDepth: -1}); err == nil {
		t.Fatalf("expected negative depth to be rejected")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustNewFrontend to panic")
		}
	}()
	MustNewFrontend(Config{Parser: "lalr"})
}

func TestParseParserKindSpellings(t *testing.T) {
	tests := map[string]ParserKind{
		"rd": ParserRD, "RD": ParserRD, "recursive-descent": ParserRD, " recursive ": ParserRD,
		"gbp": ParserGBP, "geometric": ParserGBP, "Geometric-Binding": ParserGBP,
	}
	for input, want := range tests {
		got, err := ParseParserKind(input)
		if err != nil || got != want {
			t.Fatalf("ParseParserKind(%q) = %s, %v; want %s", input, got, err, want)
		}
	}
}

func TestFrontendParseSelectsParser(t *testing.T) {
	source := "if a\n    say 1\nelse\n    say 2\n"
	for _, kind := range []ParserKind{ParserRD, ParserGBP} {
		f := MustNewFrontend(Config{Parser: kind})
		program, err := f.Parse(source)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if program.Parser != kind {
			t.Fatalf("expected program tagged %s, got %s", kind, program.Parser)
		}
		if len(program.Statements) != 1 || program.Line() != 1 {
			t.Fatalf("%s: unexpected program %+v", kind, program)
		}
	}
}

func TestFrontendReturnsLexErrors(t *testing.T) {
	f := MustNewFrontend(Config{})
	_, err := f.Parse("say \"open")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexError, got %v", err)
	}
}

func TestFrontendMaxDepth(t *testing.T) {
	source := "say " + strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20)
	shallow := MustNewFrontend(Config{MaxDepth: 10})
	if _, err := shallow.Parse(source); !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("expected depth error, got %v", err)
	}
	if _, err := MustNewFrontend(Config{}).Parse(source); err != nil {
		t.Fatalf("expected default depth to accept 20 levels, got %v", err)
	}
}

func TestFrontendCompareReportsSharedError(t *testing.T) {
	f := MustNewFrontend(Config{})
	_, err := f.Compare("say (1\n")
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	if errors.Is(err, ErrParsersDisagree) {
		t.Fatalf("expected the shared syntax error, got disagreement %v", err)
	}
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) || syntaxErr.Expected != TokenRParen {
		t.Fatalf("expected missing paren error, got %v", err)
	}
}

func TestFirstDifference(t *testing.T) {
	a := []Statement{&StopStmt{base: base{1}}, &SkipStmt{base: base{2}}}
	b := []Statement{&StopStmt{base: base{1}}, &SkipStmt{base: base{3}}}
	if i, ok := firstDifference(a, b); ok || i != 1 {
		t.Fatalf("expected difference at 1, got %d %v", i, ok)
	}
	if i, ok := firstDifference(a, a[:1]); ok || i != 1 {
		t.Fatalf("expected length difference at 1, got %d %v", i, ok)
	}
	if _, ok := firstDifference(a, a); !ok {
		t.Fatalf("expected equal lists to match")
	}
}

func TestFrontendLogsPhases(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	f := MustNewFrontend(Config{Parser: ParserGBP, Logger: logger})
	if _, err := f.Parse("say 1\n"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"msg":"tokenized"`, `"msg":"parsed"`, `"parser":"gbp"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log output:\n%s", want, out)
		}
	}
}

func TestFrontendConcurrentUse(t *testing.T) {
	f := MustNewFrontend(Config{Parser: ParserGBP})
	source := parityCorpus["nested blocks"]

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.Compare(source); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent compare: %v", err)
	}
}
