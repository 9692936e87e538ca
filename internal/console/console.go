// Package console writes tagged status lines for training and evaluation runs.
//
//	Ok       Epoch 0 training finished with accuracy 0.52
//	Match    Expected 3, got 3
//	Mismatch Expected 4, got 9
package console

import (
	"fmt"
	"io"
	"sync"
)

// ANSI colours.
const (
	reset = "\x1b[0m"
	green = "\x1b[32m"
	blue  = "\x1b[34m"
	red   = "\x1b[31m"
)

type tag struct {
	text  string
	color string
}

var (
	okTag       = tag{"Ok", green}
	infoTag     = tag{"Info", blue}
	matchTag    = tag{"Match", green}
	mismatchTag = tag{"Mismatch", red}
)

// tagWidth is the width of the longest tag, "Mismatch".
const tagWidth = 8

// Logger writes one tagged line per call. It is safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// New returns a Logger writing to w, colouring tags when color is set.
func New(w io.Writer, color bool) *Logger {
	return &Logger{w: w, color: color}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, false)
}

func (l *Logger) log(t tag, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.color {
		fmt.Fprintf(l.w, "%s%-*s%s %s\n", t.color, tagWidth, t.text, reset, msg)
		return
	}
	fmt.Fprintf(l.w, "%-*s %s\n", tagWidth, t.text, msg)
}

// Ok reports a completed step.
func (l *Logger) Ok(msg string) { l.log(okTag, msg) }

// Info reports progress.
func (l *Logger) Info(msg string) { l.log(infoTag, msg) }

// Match reports a correctly classified case.
func (l *Logger) Match(msg string) { l.log(matchTag, msg) }

// Mismatch reports a misclassified case.
func (l *Logger) Mismatch(msg string) { l.log(mismatchTag, msg) }

// Okf is Ok with fmt.Sprintf formatting.
func (l *Logger) Okf(format string, args ...any) { l.Ok(fmt.Sprintf(format, args...)) }

// Infof is Info with fmt.Sprintf formatting.
func (l *Logger) Infof(format string, args ...any) { l.Info(fmt.Sprintf(format, args...)) }

// Matchf is Match with fmt.Sprintf formatting.
func (l *Logger) Matchf(format string, args ...any) { l.Match(fmt.Sprintf(format, args...)) }

// Mismatchf is Mismatch with fmt.Sprintf formatting.
func (l *Logger) Mismatchf(format string, args ...any) { l.Mismatch(fmt.Sprintf(format, args...)) }
