// Package log prints levelled, colored messages for the fsb5 command.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var (
	// Level filters out messages more verbose than itself.
	Level = LogLevelInfo
	// Output receives every message that passes the level filter.
	Output io.Writer = os.Stderr
)

var (
	cyan   = color.New(color.FgCyan)
	yellow = color.New(color.FgYellow)

	mu     sync.Mutex
	indent int
)

// Configure picks the level from the command line switches. debug wins over
// silent, silent over quiet.
func Configure(debug, quiet, silent bool) {
	switch {
	case debug:
		Level = LogLevelDebug
	case silent:
		Level = LogLevelNone
	case quiet:
		Level = LogLevelWarn
	default:
		Level = LogLevelInfo
	}
}

func Warnf(f string, args ...interface{}) {
	if LogLevelWarn <= Level {
		mu.Lock()
		defer mu.Unlock()

		yellow.Fprintf(Output, "[WARNING] "+f+"\n", args...)
	}
}

func Infof(f string, args ...interface{}) {
	if LogLevelInfo <= Level {
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(Output, f+"\n", args...)
	}
}

func Debugf(f string, args ...interface{}) {
	if LogLevelDebug <= Level {
		mu.Lock()
		defer mu.Unlock()

		cyan.Fprintf(Output, strings.Repeat("  ", indent)+f+"\n", args...)
	}
}

// Enter indents the following debug messages one step further.
func Enter() {
	mu.Lock()
	indent++
	mu.Unlock()
}

// Leave undoes one Enter.
func Leave() {
	mu.Lock()
	if indent > 0 {
		indent--
	}
	mu.Unlock()
}
