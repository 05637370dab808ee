package format

import (
	"fmt"
	"io"

	"go.followtheprocess.codes/curly/internal/spec"
)

// HTTPExporter is an [Exporter] that writes a [spec.Request] as a request block
// as found in a .http file.
type HTTPExporter struct{}

// Export implements [Exporter] for [HTTPExporter].
func (h HTTPExporter) Export(w io.Writer, request spec.Request) error {
	if _, err := io.WriteString(w, request.String()); err != nil {
		return fmt.Errorf("could not write http request: %w", err)
	}

	return nil
}
