package curl

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"text/template"

	"go.followtheprocess.codes/curly/internal/shell"
	"go.followtheprocess.codes/curly/internal/spec"
)

//go:embed templates/curl.txt.tmpl
var curlTempl string

// curlFunctions are custom template functions available in the curlTemplate.
//
//nolint:gochecknoglobals // This has to be here
var curlFunctions = template.FuncMap{
	"quote": shell.Quote,
	"word":  shell.QuoteWord,
}

// curlTemplate is the parsed curl command line text/template.
//
//nolint:gochecknoglobals // Having the template as a global means it's parsed only once
var curlTemplate = template.Must(template.New("curl").Funcs(curlFunctions).Parse(curlTempl))

// Options control how a request is serialised.
type Options struct {
	// AllowGetBody permits a body to be sent with a GET request, normally
	// a GET request's body is dropped.
	AllowGetBody bool
}

// command is the data passed to the curl template.
type command struct {
	Method  string          // Upper case method, quoted by the template if it isn't a plain word
	URL     string          // Final url including params
	Cookie  string          // Value for --cookie, empty for none
	Body    string          // Value for --data-raw
	Headers []spec.KeyValue // Headers including any from auth, in order
	HasBody bool            // Whether to emit the body at all
}

// Serialize renders request as a curl command line, one flag per line joined
// by line continuations:
//
//	curl --location -X POST 'https://api.test/items' \
//	  -H 'Content-Type: application/json' \
//	  --data-raw '{"name":"widget"}'
//
// The url has its scheme defaulted by [spec.NormaliseURL] and the params appended to
// any existing query. Bearer and Basic auth become an Authorization header, overwriting
// one already present, cookie auth becomes a --cookie flag. JSON bodies are compacted,
// anything else is sent as is, a body on a GET is only sent if options allow it and
// it isn't an empty object. A JSON Content-Type is added if the body is sent without one.
func Serialize(request spec.Request, options Options) string {
	method := strings.ToUpper(strings.TrimSpace(request.Method))
	if method == "" {
		method = http.MethodGet
	}

	header := request.Header()

	var cookie string

	switch auth := spec.AuthOrNone(request.Auth).(type) {
	case spec.BearerAuth:
		if auth.Token != "" {
			header.SetFold("Authorization", "Bearer "+auth.Token)
		}
	case spec.BasicAuth:
		header.SetFold("Authorization", "Basic "+auth.Encode())
	case spec.CookieAuth:
		cookie = auth.Value
	}

	body, hasBody := attachableBody(method, request.Body, options)
	if hasBody && !header.Has("Content-Type") {
		header.Set("Content-Type", "application/json")
	}

	cmd := command{
		Method:  method,
		URL:     withParams(spec.NormaliseURL(request.URL), request.Params),
		Cookie:  cookie,
		Body:    body,
		Headers: header.All(),
		HasBody: hasBody,
	}

	buf := &bytes.Buffer{}
	_ = curlTemplate.Execute(buf, cmd) //nolint:errcheck // Static template writing to a bytes.Buffer

	return strings.TrimRight(buf.String(), "\n")
}

// attachableBody decides whether the body should be sent and returns the text to send.
func attachableBody(method, body string, options Options) (string, bool) {
	if method == http.MethodGet && !options.AllowGetBody {
		return "", false
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return "", false
	}

	if !json.Valid([]byte(trimmed)) {
		return body, true
	}

	if method == http.MethodGet && isEmptyObject(trimmed) {
		return "", false
	}

	compact := &bytes.Buffer{}
	if err := json.Compact(compact, []byte(trimmed)); err != nil {
		return body, true
	}

	return compact.String(), true
}

// isEmptyObject reports whether text is a JSON object with no members.
func isEmptyObject(text string) bool {
	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &object); err != nil {
		return false
	}

	return object != nil && len(object) == 0
}

// withParams appends params with a non-empty key to the query of rawURL, in order
// and without disturbing any existing query.
func withParams(rawURL string, params []spec.KeyValue) string {
	var pairs []string

	for _, param := range params {
		if param.Key == "" {
			continue
		}

		pairs = append(pairs, url.QueryEscape(param.Key)+"="+url.QueryEscape(param.Value))
	}

	if len(pairs) == 0 {
		return rawURL
	}

	encoded := strings.Join(pairs, "&")

	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		separator := "?"
		if strings.Contains(rawURL, "?") {
			separator = "&"
		}

		return rawURL + separator + encoded
	}

	if parsed.RawQuery == "" {
		parsed.RawQuery = encoded
	} else {
		parsed.RawQuery += "&" + encoded
	}

	return parsed.String()
}
