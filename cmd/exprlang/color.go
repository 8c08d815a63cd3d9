package main

import (
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// detectColorLevel mirrors the teacher's internal/evaluator/builtins_term.go
// detectColorLevel: NO_COLOR, non-terminal stdout, TERM=dumb, and
// COLORTERM/256color detection, returning 0, 1, 256, or 16777216 as the
// teacher's does; colorize treats any non-zero level as plain "on", since
// diagnostics only ever need one severity color, not a full palette.
func detectColorLevel() int {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return 0
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return 0
	}
	term := os.Getenv("TERM")
	if term == "dumb" {
		return 0
	}
	if ct := os.Getenv("COLORTERM"); ct == "truecolor" || ct == "24bit" {
		return 16777216
	}
	if strings.Contains(term, "256color") {
		return 256
	}
	return 1
}

var (
	colorLevelOnce sync.Once
	colorLevelVal  int
)

func getColorLevel() int {
	colorLevelOnce.Do(func() {
		colorLevelVal = detectColorLevel()
	})
	return colorLevelVal
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiReset  = "\x1b[0m"
)

func colorize(code, s string) string {
	if getColorLevel() == 0 {
		return s
	}
	return code + s + ansiReset
}
