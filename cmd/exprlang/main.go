// Command exprlang is a standalone driver for the checker/planner/
// interpreter pipeline (§6): given a declaration file, an expression
// (as JSON, since the parser is out of scope per §1 Non-goals), and an
// optional activation file, it checks, plans, and evaluates the
// expression, printing diagnostics or the resulting value.
//
// Grounded on the teacher's cmd/funxy/main.go for overall CLI shape
// (flag parsing, reading source off disk, one clear top-level error
// path to a non-zero exit code) and on internal/evaluator/builtins_term.go
// for gating colorized diagnostics behind isatty/NO_COLOR/TERM detection.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/funvibe/exprlang/pkg/activation"
	"github.com/funvibe/exprlang/pkg/declfile"
	"github.com/funvibe/exprlang/pkg/env"
	"github.com/funvibe/exprlang/pkg/exprjson"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("exprlang", flag.ContinueOnError)
	declsPath := fs.String("decls", "", "path to a decls.yaml declaration file (required)")
	exprPath := fs.String("expr", "", "path to a JSON-encoded expression file (required)")
	activationPath := fs.String("activation", "", "path to a JSON object of variable bindings (optional)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *declsPath == "" || *exprPath == "" {
		fmt.Fprintln(os.Stderr, "usage: exprlang -decls decls.yaml -expr expr.json [-activation activation.json]")
		return 2
	}

	e, err := declfile.Load(*declsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, colorize(ansiRed, "error: "+err.Error()))
		return 1
	}

	exprData, err := os.ReadFile(*exprPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, colorize(ansiRed, "error: "+err.Error()))
		return 1
	}
	expr, err := exprjson.DecodeExpr(exprData)
	if err != nil {
		fmt.Fprintln(os.Stderr, colorize(ansiRed, "error: decoding expression: "+err.Error()))
		return 1
	}

	result := e.Check(expr)
	exitCode := 0
	for _, iss := range result.Issues {
		color := ansiYellow
		if iss.Severity.String() == "error" {
			color = ansiRed
			exitCode = 1
		}
		fmt.Fprintln(os.Stderr, colorize(color, iss.String()))
	}
	if !result.IsValid() {
		return 1
	}
	if exitCode != 0 {
		return exitCode
	}

	act, err := loadActivation(*activationPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, colorize(ansiRed, "error: "+err.Error()))
		return 1
	}

	prog := e.Plan(result.Checked)
	evalResult, err := e.NewEvaluator().Eval(context.Background(), prog.Program, act)
	if err != nil {
		fmt.Fprintln(os.Stderr, colorize(ansiRed, "error: "+err.Error()))
		return 1
	}

	fmt.Printf("%s\n", evalResult.Value)
	fmt.Fprintf(os.Stderr, colorize(ansiBlue, fmt.Sprintf("plan=%s eval=%s\n", prog.ID, evalResult.EvalID)))
	return 0
}

func loadActivation(path string) (*activation.Map, error) {
	m := activation.NewMap()
	if path == "" {
		return m, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading activation file: %w", err)
	}
	var fields map[string]exprjson.Value
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("parsing activation file: %w", err)
	}
	for name, vj := range fields {
		v, err := vj.ToValue()
		if err != nil {
			return nil, fmt.Errorf("activation variable %s: %w", name, err)
		}
		m.Set(name, v)
	}
	return m, nil
}
