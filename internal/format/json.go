package format

import (
	"encoding/json"
	"fmt"
	"io"

	"go.followtheprocess.codes/curly/internal/spec"
)

// JSONExporter is an [Exporter] that transforms a [spec.Request] into a JSON document.
type JSONExporter struct{}

// Export implements [Exporter] for [JSONExporter] and exports the given request
// as a complete JSON document.
func (j JSONExporter) Export(w io.Writer, request spec.Request) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	return encoder.Encode(toDocument(request))
}

// JSONImporter is an [Importer] that transforms JSON representations of
// a request into the equivalent [spec.Request].
type JSONImporter struct{}

// Import implements [Importer] for [JSONImporter] and imports the given
// JSON document into a [spec.Request].
func (j JSONImporter) Import(r io.Reader) (spec.Request, error) {
	var doc document

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&doc); err != nil {
		return spec.Request{}, fmt.Errorf("could not decode JSON: %w", err)
	}

	return doc.request()
}
