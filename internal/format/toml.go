package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/curly/internal/spec"
)

// TOMLExporter is an [Exporter] that transforms a [spec.Request] into a TOML document.
type TOMLExporter struct{}

// Export implements [Exporter] for [TOMLExporter] and exports the given request
// as a complete TOML document.
func (t TOMLExporter) Export(w io.Writer, request spec.Request) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = ""

	return encoder.Encode(toDocument(request))
}

// TOMLImporter is an [Importer] that transforms TOML representations of
// a request into the equivalent [spec.Request].
type TOMLImporter struct{}

// Import implements [Importer] for [TOMLImporter], keys that don't belong
// to a request are an error.
func (t TOMLImporter) Import(r io.Reader) (spec.Request, error) {
	var doc document

	meta, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return spec.Request{}, fmt.Errorf("could not decode TOML: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return spec.Request{}, fmt.Errorf("could not decode TOML: unknown keys %s", strings.Join(keys, ", "))
	}

	return doc.request()
}
