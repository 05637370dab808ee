// Package spec provides the Request type, the concrete, canonical data structure
// describing a single HTTP request.
//
// It is the shared shape between the curl parser, which produces a Request from
// the arguments of a curl command, and the curl serializer, which turns a Request
// back into a command line. Requests are plain values, every conversion returns
// a fresh one.
//
// spec also provides the url normalisation applied at the boundary of the
// program, see [NormaliseURL].
package spec

import (
	"fmt"
	"net/http"
	"strings"
)

// EmptyBody is the body text of a request for which no body was given.
//
// It is an empty JSON object with room for the user to type into.
const EmptyBody = "{\n  \n}"

// KeyValue is a single key value pair, used for query parameters and headers.
//
// Keys need not be unique within a list of KeyValues.
type KeyValue struct {
	Key   string `json:"key" toml:"key" yaml:"key"`
	Value string `json:"value" toml:"value" yaml:"value"`
}

// String implements [fmt.Stringer] for a [KeyValue].
func (kv KeyValue) String() string {
	return kv.Key + "=" + kv.Value
}

// Request is a single HTTP request as a canonical representation.
type Request struct {
	// Auth is the authentication strategy, nil is equivalent to [NoAuth]
	Auth Auth

	// The HTTP method e.g. "GET", free text and not validated
	Method string

	// The URL, with the query string moved into Params when the URL is absolute
	URL string

	// Request body text, pretty printed if it's JSON
	Body string

	// Query parameters in source order, duplicates preserved
	Params []KeyValue

	// Request headers in source order
	Headers []KeyValue
}

// Header collapses the ordered list of request headers into a [Header].
//
// Headers with an empty key are dropped and later duplicates overwrite
// earlier ones.
func (r Request) Header() Header {
	header := Header{}
	for _, kv := range r.Headers {
		if kv.Key == "" {
			continue
		}

		header.Set(kv.Key, kv.Value)
	}

	return header
}

// String implements [fmt.Stringer] for a [Request] and formats
// the request as a http request block as found in a .http file.
func (r Request) String() string {
	builder := &strings.Builder{}

	fmt.Fprintf(builder, "%s %s\n", r.method(), r.urlWithParams())

	for _, kv := range r.Header().All() {
		fmt.Fprintf(builder, "%s: %s\n", kv.Key, kv.Value)
	}

	switch auth := AuthOrNone(r.Auth).(type) {
	case BearerAuth:
		fmt.Fprintf(builder, "Authorization: Bearer %s\n", auth.Token)
	case BasicAuth:
		fmt.Fprintf(builder, "Authorization: Basic %s\n", auth.Encode())
	case CookieAuth:
		fmt.Fprintf(builder, "Cookie: %s\n", auth.Value)
	}

	// Separate the body section, but only if there's something worth showing
	if body := strings.TrimSpace(r.Body); body != "" && body != strings.TrimSpace(EmptyBody) {
		fmt.Fprintf(builder, "\n%s\n", body)
	}

	return builder.String()
}

// method returns the request method, defaulting to GET.
func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}

	return strings.ToUpper(r.Method)
}

// urlWithParams renders the url with the params naively appended, it's used
// for display only.
func (r Request) urlWithParams() string {
	var params []string
	for _, param := range r.Params {
		if param.Key != "" {
			params = append(params, param.String())
		}
	}

	if len(params) == 0 {
		return r.URL
	}

	separator := "?"
	if strings.Contains(r.URL, "?") {
		separator = "&"
	}

	return r.URL + separator + strings.Join(params, "&")
}
