package format

import (
	"fmt"
	"io"

	"go.followtheprocess.codes/curly/internal/curl"
	"go.followtheprocess.codes/curly/internal/shell"
	"go.followtheprocess.codes/curly/internal/spec"
)

// CurlImporter is an [Importer] that parses a curl command line into a [spec.Request].
type CurlImporter struct{}

// Import implements [Importer] for [CurlImporter], the entire contents of r is read and
// tokenized as a single command.
//
// If the text is not a curl command, the error wraps [ErrNotCurl].
func (c CurlImporter) Import(r io.Reader) (spec.Request, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return spec.Request{}, fmt.Errorf("could not read curl command: %w", err)
	}

	request, ok := curl.Parse(shell.Tokenize(string(contents)))
	if !ok {
		return spec.Request{}, ErrNotCurl
	}

	return request, nil
}

// CurlExporter is an [Exporter] that transforms a [spec.Request] into a curl command.
type CurlExporter struct {
	// AllowGetBody sends the body of a GET request rather than dropping it.
	AllowGetBody bool
}

// Export implements [Exporter] for [CurlExporter] and exports the given
// request as a multi-line curl command.
func (c CurlExporter) Export(w io.Writer, request spec.Request) error {
	command := curl.Serialize(request, curl.Options{AllowGetBody: c.AllowGetBody})
	if _, err := fmt.Fprintln(w, command); err != nil {
		return fmt.Errorf("could not write curl command: %w", err)
	}

	return nil
}
