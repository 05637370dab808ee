package curly

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go.followtheprocess.codes/curly/internal/format"
	"go.followtheprocess.codes/curly/internal/spec"
	"go.followtheprocess.codes/msg"
)

// ExportOptions are the flags passed to the export subcommand.
type ExportOptions struct {
	// Path is the request document to export, "-" means stdin.
	Path string

	// Format is the format of the request document, empty means
	// infer it from the file extension.
	Format string

	// AllowGetBody sends the body of a GET request rather than dropping it.
	AllowGetBody bool

	// Debug controls debug logging.
	Debug bool
}

// Validate reports whether the ExportOptions is valid, returning a non-nil
// error if it's not.
func (e ExportOptions) Validate() error {
	if e.Path == "" {
		return errors.New("path cannot be empty, pass '-' to read from stdin")
	}

	if e.Format == "" && e.Path == stdinPath {
		return errors.New("--format is required when reading from stdin")
	}

	_, err := e.input()

	return err
}

// input returns the format of the request document.
func (e ExportOptions) input() (format.Format, error) {
	var (
		f   format.Format
		err error
	)

	if e.Format != "" {
		f, err = format.ByName(e.Format)
	} else {
		f, err = format.FromExtension(e.Path)
	}

	if err != nil {
		return format.Format{}, fmt.Errorf("invalid option for --format: %w", err)
	}

	if f.Importer == nil {
		return format.Format{}, fmt.Errorf("invalid option for --format: %s documents cannot be exported to curl", f.Name)
	}

	return f, nil
}

// Export handles the export subcommand, converting a request document into a
// curl command.
func (c Curly) Export(ctx context.Context, options ExportOptions) error {
	logger := c.logger.Prefixed("export").With(slog.String("path", options.Path))

	if err := options.Validate(); err != nil {
		return err
	}

	logger.Debug("Export configuration", slog.String("options", fmt.Sprintf("%+v", options)))

	input, _ := options.input() //nolint:errcheck // Checked in Validate

	r, closer, err := c.open(options.Path)
	if err != nil {
		return err
	}
	defer closer()

	request, err := input.Importer.Import(r)
	if err != nil {
		return fmt.Errorf("could not import %s: %w", options.Path, err)
	}

	logger.Debug(
		"Imported request",
		slog.String("format", input.Name),
		slog.String("method", request.Method),
		slog.String("url", request.URL),
		slog.String("auth", spec.AuthKind(request.Auth)),
	)

	if err := ctx.Err(); err != nil {
		return err
	}

	if droppedGetBody(request, options.AllowGetBody) {
		msg.Fwarn(c.stderr, "the body of a GET request is not sent, pass --allow-get-body to include it")
	}

	exporter := format.CurlExporter{AllowGetBody: options.AllowGetBody}
	if err := exporter.Export(c.stdout, request); err != nil {
		return fmt.Errorf("could not export %s: %w", options.Path, err)
	}

	return nil
}

// droppedGetBody reports whether request is a GET with a body that
// won't be sent.
func droppedGetBody(request spec.Request, allow bool) bool {
	if allow || !strings.EqualFold(strings.TrimSpace(request.Method), http.MethodGet) {
		return false
	}

	body := strings.TrimSpace(request.Body)

	return body != "" && body != strings.TrimSpace(spec.EmptyBody)
}
