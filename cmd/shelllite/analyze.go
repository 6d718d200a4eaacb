package main

import (
	"fmt"
	"sort"

	"github.com/shelllite/shelllite/lite"
	"github.com/spf13/cobra"
)

const mainScope = "<main>"

type lintWarning struct {
	Scope   string
	Line    int
	Message string
}

func newAnalyzeCommand(st *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze FILE",
		Short: "Report unreachable statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			warnings := analyzeProgram(program.Statements)
			if len(warnings) == 0 {
				fmt.Fprintln(st.stdout, "No issues found")
				return nil
			}
			for _, warning := range warnings {
				fmt.Fprintf(st.stdout, "%s:%d: %s (%s)\n", path, max(warning.Line, 1), warning.Message, warning.Scope)
			}
			return fmt.Errorf("analysis found %d issue(s)", len(warnings))
		},
	}
}

// analyzeProgram lints the top level and every function and method body.
func analyzeProgram(stmts []lite.Statement) []lintWarning {
	warnings := make([]lintWarning, 0)
	lintStatements(mainScope, stmts, &warnings)

	methods := make(map[*lite.FunctionStmt]string)
	for _, stmt := range stmts {
		lite.Walk(stmt, func(n lite.Node) bool {
			switch typed := n.(type) {
			case *lite.ClassStmt:
				for _, method := range typed.Methods {
					methods[method] = typed.Name
				}
			case *lite.FunctionStmt:
				scope := typed.Name
				if class, ok := methods[typed]; ok {
					scope = class + "." + typed.Name
				}
				lintStatements(scope, typed.Body, &warnings)
			}
			return true
		})
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Line != warnings[j].Line {
			return warnings[i].Line < warnings[j].Line
		}
		return warnings[i].Scope < warnings[j].Scope
	})
	return warnings
}

func lintStatements(scope string, statements []lite.Statement, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			*warnings = append(*warnings, lintWarning{
				Scope:   scope,
				Line:    stmt.Line(),
				Message: "unreachable statement",
			})
			continue
		}
		if statementTerminates(scope, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

// statementTerminates reports whether control never reaches the statement
// after stmt. Function bodies are linted separately.
func statementTerminates(scope string, stmt lite.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *lite.ReturnStmt, *lite.ThrowStmt, *lite.ExitStmt, *lite.StopStmt, *lite.SkipStmt:
		return true
	case *lite.IfStmt:
		return branchesTerminate(scope, typed.Body, typed.Else, warnings)
	case *lite.UnlessStmt:
		return branchesTerminate(scope, typed.Body, typed.Else, warnings)
	case *lite.WhileStmt:
		lintStatements(scope, typed.Body, warnings)
		return false
	case *lite.UntilStmt:
		lintStatements(scope, typed.Body, warnings)
		return false
	case *lite.ForStmt:
		lintStatements(scope, typed.Body, warnings)
		return false
	case *lite.ForInStmt:
		lintStatements(scope, typed.Body, warnings)
		return false
	case *lite.RepeatStmt:
		lintStatements(scope, typed.Body, warnings)
		return false
	case *lite.ForeverStmt:
		lintStatements(scope, typed.Body, warnings)
		return !loopCanStop(typed.Body)
	case *lite.TryStmt:
		bodyTerminated := lintStatements(scope, typed.Body, warnings)
		catchTerminated := lintStatements(scope, typed.Catch, warnings)
		return bodyTerminated && catchTerminated
	case *lite.TryAlwaysStmt:
		bodyTerminated := lintStatements(scope, typed.Body, warnings)
		catchTerminated := lintStatements(scope, typed.Catch, warnings)
		if lintStatements(scope, typed.Always, warnings) {
			return true
		}
		return bodyTerminated && catchTerminated
	case *lite.WhenStmt:
		allTerminated := true
		for _, c := range typed.Cases {
			if !lintStatements(scope, c.Body, warnings) {
				allTerminated = false
			}
		}
		if typed.Otherwise == nil {
			return false
		}
		return lintStatements(scope, typed.Otherwise, warnings) && allTerminated
	default:
		return false
	}
}

func branchesTerminate(scope string, body, alternate []lite.Statement, warnings *[]lintWarning) bool {
	bodyTerminated := lintStatements(scope, body, warnings)
	if alternate == nil {
		return false
	}
	return lintStatements(scope, alternate, warnings) && bodyTerminated
}

// loopCanStop reports whether body can leave its forever loop: a stop outside
// any nested loop, or a return, exit or throw anywhere outside nested
// definitions.
func loopCanStop(body []lite.Statement) bool {
	for _, stmt := range body {
		if leavesLoop(stmt, true) {
			return true
		}
	}
	return false
}

func leavesLoop(n lite.Node, stopLeaves bool) bool {
	switch n.Kind() {
	case lite.KindReturn, lite.KindExit, lite.KindThrow:
		return true
	case lite.KindStop:
		return stopLeaves
	case lite.KindFunctionDef, lite.KindClassDef, lite.KindLambda:
		return false
	case lite.KindWhile, lite.KindUntil, lite.KindFor, lite.KindForIn, lite.KindRepeat, lite.KindForever:
		stopLeaves = false
	}
	for _, child := range lite.Children(n) {
		if leavesLoop(child, stopLeaves) {
			return true
		}
	}
	return false
}
