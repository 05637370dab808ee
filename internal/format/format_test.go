package format_test

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.followtheprocess.codes/curly/internal/format"
	"go.followtheprocess.codes/curly/internal/spec"
	"go.followtheprocess.codes/snapshot"
	"go.followtheprocess.codes/test"
)

var (
	update = flag.Bool("update", false, "Update snapshots")
	clean  = flag.Bool("clean", false, "Clean all snapshots and recreate")
)

// sample is the request described by every file in testdata/import.
var sample = spec.Request{
	Method:  "POST",
	URL:     "https://api.test/items",
	Params:  []spec.KeyValue{{Key: "page", Value: "2"}},
	Headers: []spec.KeyValue{{Key: "Accept", Value: "application/json"}},
	Auth:    spec.BasicAuth{Username: "alice", Password: "secret"},
	Body:    "{\n  \"name\": \"widget\"\n}",
}

func equalRequest(a, b spec.Request) bool {
	return reflect.DeepEqual(a, b)
}

func TestImport(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "import", "*"))
	test.Ok(t, err)
	test.True(t, len(files) != 0, test.Context("no import fixtures found"))

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			f, err := os.Open(file)
			test.Ok(t, err)
			defer f.Close()

			impl, err := format.FromExtension(file)
			test.Ok(t, err)
			test.True(t, impl.Importer != nil, test.Context("%s has no importer", impl.Name))

			got, err := impl.Importer.Import(f)
			test.Ok(t, err)

			test.EqualFunc(t, got, sample, equalRequest)
		})
	}
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		importer format.Importer // Importer under test
		name     string          // Name of the test case
		input    string          // Document to import
		errMsg   string          // Substring expected in the error
	}{
		{
			name:     "json unknown field",
			importer: format.JSONImporter{},
			input:    `{"method": "GET", "url": "https://h", "timeout": 5}`,
			errMsg:   `unknown field "timeout"`,
		},
		{
			name:     "json bad auth type",
			importer: format.JSONImporter{},
			input:    `{"url": "https://h", "auth": {"type": "digest"}}`,
			errMsg:   `unknown auth type "digest"`,
		},
		{
			name:     "json syntax error",
			importer: format.JSONImporter{},
			input:    `{"url": `,
			errMsg:   "could not decode JSON",
		},
		{
			name:     "yaml unknown field",
			importer: format.YAMLImporter{},
			input:    "url: https://h\nretries: 3\n",
			errMsg:   "could not decode YAML",
		},
		{
			name:     "yaml bad auth type",
			importer: format.YAMLImporter{},
			input:    "url: https://h\nauth:\n  type: oauth\n",
			errMsg:   `unknown auth type "oauth"`,
		},
		{
			name:     "toml unknown key",
			importer: format.TOMLImporter{},
			input:    "url = \"https://h\"\nretries = 3\n",
			errMsg:   "unknown keys retries",
		},
		{
			name:     "toml syntax error",
			importer: format.TOMLImporter{},
			input:    "url = ",
			errMsg:   "could not decode TOML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.importer.Import(strings.NewReader(tt.input))
			test.Err(t, err)
			test.True(t, strings.Contains(err.Error(), tt.errMsg), test.Context("error %q does not contain %q", err.Error(), tt.errMsg))
		})
	}
}

func TestCurlImporterNotCurl(t *testing.T) {
	tests := []string{
		"",
		"   \n",
		"wget https://h",
		"sudo curl https://h",
	}

	for _, input := range tests {
		_, err := format.CurlImporter{}.Import(strings.NewReader(input))
		test.True(t, errors.Is(err, format.ErrNotCurl), test.Context("input %q: got %v", input, err))
	}
}

func TestImportDefaults(t *testing.T) {
	got, err := format.JSONImporter{}.Import(strings.NewReader(`{"url": "https://h"}`))
	test.Ok(t, err)

	test.Equal(t, got.Method, "GET")
	test.Equal(t, got.Body, spec.EmptyBody)
	test.Equal(t, spec.AuthKind(got.Auth), spec.KindNone)
}

func TestDocumentRoundTrip(t *testing.T) {
	requests := []spec.Request{
		sample,
		{Method: "GET", URL: "https://h", Body: spec.EmptyBody, Auth: spec.NoAuth{}},
		{Method: "DELETE", URL: "https://h/1", Body: "plain text\nbody", Auth: spec.CookieAuth{Value: "a=b; c=d"}},
		{Method: "PUT", URL: "h", Body: `{"a": 1}`, Auth: spec.BearerAuth{Token: "tok"}},
	}

	for _, name := range []string{format.JSON, format.YAML, format.TOML} {
		t.Run(name, func(t *testing.T) {
			impl, err := format.ByName(name)
			test.Ok(t, err)

			for _, request := range requests {
				buf := &bytes.Buffer{}
				test.Ok(t, impl.Exporter.Export(buf, request))

				got, err := impl.Importer.Import(buf)
				test.Ok(t, err)

				test.EqualFunc(t, got, request, equalRequest, test.Context("%s document:\n%s", name, buf.String()))
			}
		})
	}
}

func TestExport(t *testing.T) {
	request := spec.Request{
		Method: "PATCH",
		URL:    "https://api.test/items/1",
		Params: []spec.KeyValue{{Key: "dry_run", Value: "true"}},
		Headers: []spec.KeyValue{
			{Key: "Accept", Value: "application/json"},
			{Key: "X-Note", Value: "it's <fine>"},
		},
		Auth: spec.BearerAuth{Token: "tok"},
		Body: "{\n  \"name\": \"it's\"\n}",
	}

	for _, name := range format.Names() {
		t.Run(name, func(t *testing.T) {
			snap := snapshot.New(
				t,
				snapshot.Update(*update),
				snapshot.Clean(*clean),
				snapshot.Color(os.Getenv("CI") == ""),
			)

			impl, err := format.ByName(name)
			test.Ok(t, err)

			buf := &bytes.Buffer{}
			test.Ok(t, impl.Exporter.Export(buf, request))

			snap.Snap(buf.String())
		})
	}
}

func TestCurlExporterAllowGetBody(t *testing.T) {
	request := spec.Request{Method: "GET", URL: "https://h", Body: `{"a":1}`}

	buf := &bytes.Buffer{}
	test.Ok(t, format.CurlExporter{}.Export(buf, request))
	test.Equal(t, buf.String(), "curl --location 'https://h'\n")

	buf.Reset()
	test.Ok(t, format.CurlExporter{AllowGetBody: true}.Export(buf, request))
	test.True(t, strings.Contains(buf.String(), `--data-raw '{"a":1}'`))
}

func TestByName(t *testing.T) {
	tests := []struct {
		name     string // Name to look up
		want     string // Expected format name
		importer bool   // Whether the format should have an importer
		wantErr  bool   // Whether an error is expected
	}{
		{name: "curl", want: format.Curl, importer: true},
		{name: "JSON", want: format.JSON, importer: true},
		{name: " yaml ", want: format.YAML, importer: true},
		{name: "toml", want: format.TOML, importer: true},
		{name: "http", want: format.HTTP, importer: false},
		{name: "xml", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := format.ByName(tt.name)
			test.WantErr(t, err, tt.wantErr)

			if tt.wantErr {
				return
			}

			test.Equal(t, got.Name, tt.want)
			test.Equal(t, got.Importer != nil, tt.importer)
			test.True(t, got.Exporter != nil)
		})
	}
}

func TestFromExtension(t *testing.T) {
	tests := []struct {
		path    string // File path
		want    string // Expected format name
		wantErr bool   // Whether an error is expected
	}{
		{path: "request.curl", want: format.Curl},
		{path: "scripts/get.sh", want: format.Curl},
		{path: "request.json", want: format.JSON},
		{path: "request.YML", want: format.YAML},
		{path: "request.yaml", want: format.YAML},
		{path: "request.toml", want: format.TOML},
		{path: "request.http", want: format.HTTP},
		{path: "request", wantErr: true},
		{path: "request.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := format.FromExtension(tt.path)
			test.WantErr(t, err, tt.wantErr)

			if !tt.wantErr {
				test.Equal(t, got.Name, tt.want)
			}
		})
	}
}
