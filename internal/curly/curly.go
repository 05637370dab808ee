// Package curly implements the functionality of the program, the CLI in package cmd is simply the
// entrypoint to exported functions and methods in this package.
package curly

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/log"
)

// Styles.
const (
	// dimmed is the style used for informational content.
	dimmed = hue.BrightBlack | hue.Italic

	// highlight is the style used for things the user should notice, like
	// the method of a built request.
	highlight = hue.Cyan | hue.Bold
)

// stdinPath is the path argument meaning "read from stdin".
const stdinPath = "-"

// Curly represents the curly program.
type Curly struct {
	stdin  io.Reader   // Input for "-" paths and interactive prompts
	stdout io.Writer   // Normal program output is written here
	stderr io.Writer   // Logs, warnings and errors are written here
	logger *log.Logger // The logger for the application
}

// New returns a new [Curly], version is only logged at debug level.
func New(debug bool, version string, stdin io.Reader, stdout, stderr io.Writer) Curly {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}

	logger := log.New(stderr, log.Prefix("curly"), log.WithLevel(level))
	logger.Debug("Starting curly", slog.String("version", version))

	return Curly{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

// open opens path for reading, "-" is stdin. The returned close function
// is always safe to call.
func (c Curly) open(path string) (io.Reader, func() error, error) {
	if path == stdinPath {
		return c.stdin, func() error { return nil }, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	return f, f.Close, nil
}
