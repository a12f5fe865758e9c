// Package logging is a small leveled logger: plain functions, no
// structured fields, colored level tags on a terminal.
package logging

import (
	"fmt"
	"log"
	"os"

	"github.com/mitchellh/colorstring"
)

var std = log.New(os.Stderr, "", log.LstdFlags)

// Info logs an informational message.
func Info(msg string) {
	std.Println(colorstring.Color("[green][info][reset] " + msg))
}

// Warn logs a recoverable problem — the batch continues.
func Warn(msg string) {
	std.Println(colorstring.Color("[yellow][warn][reset] " + msg))
}

// Error logs a failure. Callers decide whether it's fatal.
func Error(err error) {
	std.Println(colorstring.Color(fmt.Sprintf("[red][error][reset] %v", err)))
}
