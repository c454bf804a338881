// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package logger is the leveled logger behind CLI verbosity flags. Scan
// sessions log to files through log/slog instead; this one is for terse
// terminal diagnostics.
package logger

import (
	"fmt"
	"io"
	"sync"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = map[Level]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
}

// ParseLevel maps a flag value to a Level, defaulting to InfoLevel for
// anything unrecognized.
func ParseLevel(s string) Level {
	for lvl, name := range levelNames {
		if name == s {
			return lvl
		}
	}
	return InfoLevel
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// Logger writes leveled, line-oriented messages. Safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// New creates a logger writing to w, dropping messages below level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		out:   w,
		level: level,
	}
}

// SetLevel changes the minimum level of messages that get written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) write(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", level, msg)
}

func (l *Logger) Debug(msg string) { l.write(DebugLevel, msg) }

func (l *Logger) Info(msg string) { l.write(InfoLevel, msg) }

func (l *Logger) Warn(msg string) { l.write(WarnLevel, msg) }

func (l *Logger) Error(msg string) { l.write(ErrorLevel, msg) }

func (l *Logger) Debugf(format string, args ...any) { l.write(DebugLevel, fmt.Sprintf(format, args...)) }

func (l *Logger) Infof(format string, args ...any) { l.write(InfoLevel, fmt.Sprintf(format, args...)) }

func (l *Logger) Warnf(format string, args ...any) { l.write(WarnLevel, fmt.Sprintf(format, args...)) }

func (l *Logger) Errorf(format string, args ...any) { l.write(ErrorLevel, fmt.Sprintf(format, args...)) }
