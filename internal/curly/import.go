package curly

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.followtheprocess.codes/curly/internal/format"
	"go.followtheprocess.codes/curly/internal/spec"
)

// ImportOptions are the options passed to the import subcommand.
type ImportOptions struct {
	// Path is the file containing the curl command, "-" means stdin.
	Path string

	// Format is the output format e.g. json, yaml.
	Format string

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the ImportOptions is valid, returning a non-nil
// error if it's not.
func (i ImportOptions) Validate() error {
	if i.Path == "" {
		return errors.New("path cannot be empty, pass '-' to read from stdin")
	}

	f, err := format.ByName(i.Format)
	if err != nil {
		return fmt.Errorf("invalid option for --format: %w", err)
	}

	if f.Name == format.Curl {
		return errors.New("invalid option for --format: importing curl as curl, use 'curly export' to reformat a command")
	}

	return nil
}

// Import implements the import subcommand, converting a curl command into a request
// in the chosen format.
func (c Curly) Import(ctx context.Context, options ImportOptions) error {
	logger := c.logger.Prefixed("import").With(slog.String("path", options.Path))

	if err := options.Validate(); err != nil {
		return err
	}

	logger.Debug("Import configuration", slog.String("options", fmt.Sprintf("%+v", options)))

	r, closer, err := c.open(options.Path)
	if err != nil {
		return err
	}
	defer closer()

	request, err := format.CurlImporter{}.Import(r)
	if err != nil {
		return fmt.Errorf("could not import %s: %w", options.Path, err)
	}

	request.URL = spec.NormaliseURL(request.URL)

	header := request.Header()
	contentType, _ := header.Get("Content-Type")

	logger.Debug(
		"Parsed curl command",
		slog.String("method", request.Method),
		slog.String("url", request.URL),
		slog.String("auth", spec.AuthKind(request.Auth)),
		slog.String("content-type", contentType),
		slog.Int("params", len(request.Params)),
		slog.Int("headers", header.Len()),
	)

	if err := ctx.Err(); err != nil {
		return err
	}

	output, _ := format.ByName(options.Format) //nolint:errcheck // Checked in Validate

	if err := output.Exporter.Export(c.stdout, request); err != nil {
		return fmt.Errorf("could not export request as %s: %w", output.Name, err)
	}

	return nil
}
