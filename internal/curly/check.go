package curly

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.followtheprocess.codes/curly/internal/curl"
	"go.followtheprocess.codes/curly/internal/shell"
	"go.followtheprocess.codes/curly/internal/spec"
	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/msg"
	"golang.org/x/sync/errgroup"
)

// CheckOptions are the options passed to the check subcommand.
type CheckOptions struct {
	// Path is the path (file or directory) to check.
	Path string

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the CheckOptions is valid, returning a non-nil
// error if it's not.
func (c CheckOptions) Validate() error {
	if c.Path == "" {
		return errors.New("path cannot be empty")
	}

	return nil
}

// checkResult is the outcome of checking a single file.
type checkResult struct {
	path        string             // The file that was checked
	diagnostics []shell.Diagnostic // Quoting problems found by the linter
	notCurl     bool               // The file isn't a curl command at all
	unstable    bool               // The request changes when serialised and parsed again
}

// Check implements the check subcommand.
//
// Every file must contain a single curl command. Quoting problems and commands that
// don't survive being re-serialised are reported as warnings, a file that isn't a
// curl command is an error.
func (c Curly) Check(ctx context.Context, options CheckOptions) error {
	logger := c.logger.Prefixed("check").With(slog.String("path", options.Path))
	logger.Debug("Checking path")

	if err := options.Validate(); err != nil {
		return err
	}

	start := time.Now()

	paths, err := collect(logger, options.Path)
	if err != nil {
		return err
	}

	logger.Debug("Checking curl files given by path", slog.Int("number", len(paths)))

	results := make([]checkResult, len(paths))
	group := errgroup.Group{}

	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := checkFile(path)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	failed := 0

	for _, result := range results {
		for _, diagnostic := range result.diagnostics {
			msg.Fwarn(c.stderr, "%s", diagnostic)
		}

		switch {
		case result.notCurl:
			failed++

			msg.Ferror(c.stderr, "%s is not a curl command", result.path)
		case result.unstable:
			msg.Fwarn(c.stderr, "%s changes when re-serialised, some of it may not survive an export", result.path)
		default:
			msg.Fsuccess(c.stdout, "%s is valid", result.path)
		}
	}

	logger.Debug("Finished checking", slog.Int("failed", failed), slog.Duration("took", time.Since(start)))

	if failed != 0 {
		return fmt.Errorf("%d of %d file(s) are not curl commands", failed, len(results))
	}

	return nil
}

// collect returns the files to check under path, a directory is walked
// for .curl and .sh files.
func collect(logger *log.Logger, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not get path info: %w", err)
	}

	if !info.IsDir() {
		logger.Debug("Path is a file")
		return []string{path}, nil
	}

	logger.Debug("Path is a directory")

	var paths []string

	err = filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		switch filepath.Ext(path) {
		case ".curl", ".sh":
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk %s: %w", path, err)
	}

	return paths, nil
}

// checkFile lints, parses and round trips a single file.
func checkFile(path string) (checkResult, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return checkResult{}, fmt.Errorf("could not read file: %w", err)
	}

	text := string(contents)
	result := checkResult{
		path:        path,
		diagnostics: shell.Lint(path, text),
	}

	request, ok := curl.Parse(shell.Tokenize(text))
	if !ok {
		result.notCurl = true
		return result, nil
	}

	result.unstable = !roundTrips(request)

	return result, nil
}

// roundTrips reports whether request survives being serialised and parsed again.
func roundTrips(request spec.Request) bool {
	again, ok := curl.Parse(shell.Tokenize(curl.Serialize(request, curl.Options{})))

	return ok && curl.Equivalent(request, again)
}
