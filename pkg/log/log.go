// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/sweeptext/pkg/status"
)

// 🎨 Display configuration
const (
	lineIndent = 2 // spaces to indent line outcomes
	fileIndent = 4 // spaces to indent file outcomes
)

// 🏃 run tracks the sweep being rendered
type run struct {
	rule   string
	folder string
	dryRun bool
	lines  int
	files  int
}

// 🎯 Logger renders sweep outcomes to the console and mirrors them to zerolog
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	formatter status.Formatter
	verbose   bool
	mu        sync.Mutex
	current   *run
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFormatter(),
		mu:        sync.Mutex{},
	}
}

// WithZerolog replaces the structured sink, mostly for tests
func (l *Logger) WithZerolog(z zerolog.Logger) *Logger {
	l.zlog = z
	return l
}

// SetVerbose makes LogLine print unmatched lines too
func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func lineColor(s status.LineStatus) *color.Color {
	switch s {
	case status.LineAccepted:
		return color.New(color.FgGreen)
	case status.LineTargetMissing:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Faint)
	}
}

func fileColor(s status.FileStatus) *color.Color {
	switch s {
	case status.StatusCommitted:
		return color.New(color.FgBlue)
	case status.StatusSkipped:
		return color.New(color.FgCyan)
	case status.StatusFailed:
		return color.New(color.FgRed)
	case status.StatusAbandoned:
		return color.New(color.FgMagenta)
	default:
		return color.New(color.Reset)
	}
}

// 📝 StartRun prints the run banner
func (l *Logger) StartRun(ctx context.Context, rule, folder string, dryRun bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &run{rule: rule, folder: folder, dryRun: dryRun}

	mode := ""
	if dryRun {
		mode = " " + color.New(color.FgYellow).Sprint("(dry run)")
	}
	fmt.Fprintf(l.console, "[sweeping %s]%s\n", color.New(color.FgCyan).Sprint(folder), mode)
	fmt.Fprintf(l.console, "%s %s\n", color.New(color.FgMagenta).Sprint("◆"), color.New(color.Bold).Sprint(rule))

	l.zlog.Info().
		Str("rule", rule).
		Str("folder", folder).
		Bool("dry_run", dryRun).
		Msg("starting sweep")
}

// 📝 LogLine prints a line outcome; unmatched lines only in verbose mode
func (l *Logger) LogLine(ctx context.Context, o status.LineOutcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current != nil {
		l.current.lines++
	}

	ev := l.zlog.Debug()
	if o.Status == status.LineTargetMissing {
		ev = l.zlog.Warn().Err(o.Err)
	}
	ev.Str("source", o.Source).
		Int("line", o.Line).
		Str("status", o.Status.String()).
		Str("target", o.Target).
		Msg("line outcome")

	if !o.Matched() && !l.verbose {
		return
	}
	fmt.Fprintf(l.console, "%*s%s\n", lineIndent, "", lineColor(o.Status).Sprint(l.formatter.FormatLine(o)))
}

// 📝 LogFile prints a file outcome
func (l *Logger) LogFile(ctx context.Context, o *status.FileOutcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current != nil {
		l.current.files++
	}

	fmt.Fprintf(l.console, "%*s%s\n", fileIndent, "", fileColor(o.Status).Sprint(l.formatter.FormatFile(o)))

	ev := l.zlog.Info()
	if o.Err != nil {
		ev = l.zlog.Error().Err(o.Err)
	}
	ev.Str("file", o.Name).
		Str("role", o.Role.String()).
		Str("status", o.Status.String()).
		Int("inserted", len(o.Inserted)).
		Int("removed", o.Removed).
		Msg("file outcome")
}

// 📝 EndRun prints the summary of r and closes the run
func (l *Logger) EndRun(ctx context.Context, r *status.Report) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, color.New(color.FgGreen).Sprint(l.formatter.FormatSummary(r)))

	if l.current != nil {
		l.zlog.Info().
			Str("rule", l.current.rule).
			Int("lines", l.current.lines).
			Int("files", l.current.files).
			Int("committed", r.Committed()).
			Msg("sweep complete")
	}
	l.current = nil
}

// 📋 RenderReport prints a whole report in one go
func (l *Logger) RenderReport(ctx context.Context, r *status.Report) {
	l.StartRun(ctx, r.Rule, r.Folder, r.DryRun)
	for _, o := range r.Lines {
		l.LogLine(ctx, o)
	}
	for _, f := range r.Files {
		l.LogFile(ctx, f)
	}
	l.EndRun(ctx, r)
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("sweeptext")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
