package format

import (
	"fmt"
	"io"

	"go.followtheprocess.codes/curly/internal/spec"
	"go.yaml.in/yaml/v4"
)

const yamlIndent = 2

// YAMLExporter is an [Exporter] that transforms a [spec.Request] into a YAML document.
type YAMLExporter struct{}

// Export implements [Exporter] for [YAMLExporter] and exports the given request as
// a complete YAML document.
func (y YAMLExporter) Export(w io.Writer, request spec.Request) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(toDocument(request)); err != nil {
		return fmt.Errorf("could not encode YAML: %w", err)
	}

	return encoder.Close()
}

// YAMLImporter is an [Importer] that transforms YAML representations of
// a request into the equivalent [spec.Request].
type YAMLImporter struct{}

// Import implements [Importer] for [YAMLImporter].
func (y YAMLImporter) Import(r io.Reader) (spec.Request, error) {
	var doc document

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&doc); err != nil {
		return spec.Request{}, fmt.Errorf("could not decode YAML: %w", err)
	}

	return doc.request()
}
