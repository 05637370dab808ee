// Package format provides mechanisms for converting a [spec.Request] into and out of
// external formats.
//
// Notably, the package provides the [Importer] and [Exporter] interfaces for doing this
// in a format-agnostic way.
//
// It also provides the built in importers and exporters: curl, JSON, YAML, TOML
// and the .http request block.
package format

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.followtheprocess.codes/curly/internal/spec"
)

// ErrNotCurl is returned when importing text that isn't a curl command.
var ErrNotCurl = errors.New("not a curl command")

// Names of the built in formats.
const (
	Curl = "curl"
	JSON = "json"
	YAML = "yaml"
	TOML = "toml"
	HTTP = "http"
)

// Exporter is the interface defining a mechanism for exporting a [spec.Request]
// into an external format.
type Exporter interface {
	// Export exports the [spec.Request] into an external format, written to w.
	Export(w io.Writer, request spec.Request) error
}

// Importer is the interface defining a mechanism for importing external formats
// into a [spec.Request].
type Importer interface {
	// Import imports the data from the external format into a [spec.Request].
	Import(r io.Reader) (spec.Request, error)
}

// Format is a named format along with its importer and exporter.
type Format struct {
	Importer Importer // Importer for the format, nil if it is export only
	Exporter Exporter // Exporter for the format
	Name     string   // Name of the format e.g. "json"
}

// Names returns the names of all the built in formats.
func Names() []string {
	return []string{Curl, JSON, YAML, TOML, HTTP}
}

// ByName returns the built in format called name, matched case insensitively.
func ByName(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Curl:
		return Format{Name: Curl, Importer: CurlImporter{}, Exporter: CurlExporter{}}, nil
	case JSON:
		return Format{Name: JSON, Importer: JSONImporter{}, Exporter: JSONExporter{}}, nil
	case YAML:
		return Format{Name: YAML, Importer: YAMLImporter{}, Exporter: YAMLExporter{}}, nil
	case TOML:
		return Format{Name: TOML, Importer: TOMLImporter{}, Exporter: TOMLExporter{}}, nil
	case HTTP:
		return Format{Name: HTTP, Exporter: HTTPExporter{}}, nil
	default:
		return Format{}, fmt.Errorf("unknown format %q, expected one of %s", name, strings.Join(Names(), ", "))
	}
}

// FromExtension returns the built in format for a file path based on its extension.
//
// Shell scripts (.sh) and .curl files are curl commands and .yml is YAML.
func FromExtension(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".curl", ".sh":
		return ByName(Curl)
	case ".json":
		return ByName(JSON)
	case ".yaml", ".yml":
		return ByName(YAML)
	case ".toml":
		return ByName(TOML)
	case ".http":
		return ByName(HTTP)
	case "":
		return Format{}, fmt.Errorf("cannot infer format of %s: no file extension", path)
	default:
		return Format{}, fmt.Errorf("cannot infer format of %s: unrecognised extension %q", path, ext)
	}
}
