// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package xlog provides a Logger interface for debug output that can be
// switched off. All functions accept a nil Logger and do nothing then,
// so a package can keep a Logger variable that is nil by default and
// only set it while debugging. The log.Logger type of the standard
// library satisfies the interface.
package xlog

import "fmt"

// Logger is the interface for the output of log messages. It is
// provided by *log.Logger.
type Logger interface {
	Output(calldepth int, s string) error
}

// Print formats with fmt.Sprint and writes the result to the logger. A
// nil logger produces no output.
func Print(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprint(v...))
	}
}

// Printf formats with fmt.Sprintf and writes the result to the logger.
// A nil logger produces no output.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println formats with fmt.Sprintln and writes the result to the
// logger. A nil logger produces no output.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}
