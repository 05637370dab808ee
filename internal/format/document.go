package format

import (
	"fmt"
	"net/http"
	"strings"

	"go.followtheprocess.codes/curly/internal/spec"
)

// document is the serialisable shape of a [spec.Request] shared by the JSON, YAML
// and TOML formats.
type document struct {
	Auth    *authDocument   `json:"auth,omitempty"    toml:"auth,omitempty"    yaml:"auth,omitempty"`
	Method  string          `json:"method"            toml:"method"            yaml:"method"`
	URL     string          `json:"url"               toml:"url"               yaml:"url"`
	Body    string          `json:"body,omitempty"    toml:"body,omitempty"    yaml:"body,omitempty"`
	Params  []spec.KeyValue `json:"params,omitempty"  toml:"params,omitempty"  yaml:"params,omitempty"`
	Headers []spec.KeyValue `json:"headers,omitempty" toml:"headers,omitempty" yaml:"headers,omitempty"`
}

// authDocument is a tagged [spec.Auth], Type names the variant and only
// that variant's fields are set.
type authDocument struct {
	Type     string `json:"type"               toml:"type"               yaml:"type"`
	Token    string `json:"token,omitempty"    toml:"token,omitempty"    yaml:"token,omitempty"`
	Username string `json:"username,omitempty" toml:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" toml:"password,omitempty" yaml:"password,omitempty"`
	Value    string `json:"value,omitempty"    toml:"value,omitempty"    yaml:"value,omitempty"`
}

// toDocument converts a request into its document form, the empty body
// placeholder is left out.
func toDocument(request spec.Request) document {
	doc := document{
		Method:  request.Method,
		URL:     request.URL,
		Params:  request.Params,
		Headers: request.Headers,
	}

	if request.Body != spec.EmptyBody {
		doc.Body = request.Body
	}

	switch auth := spec.AuthOrNone(request.Auth).(type) {
	case spec.BearerAuth:
		doc.Auth = &authDocument{Type: spec.KindBearer, Token: auth.Token}
	case spec.BasicAuth:
		doc.Auth = &authDocument{Type: spec.KindBasic, Username: auth.Username, Password: auth.Password}
	case spec.CookieAuth:
		doc.Auth = &authDocument{Type: spec.KindCookie, Value: auth.Value}
	}

	return doc
}

// request converts a decoded document back into a [spec.Request].
//
// The method is upper cased and defaults to GET, a missing body becomes
// [spec.EmptyBody].
func (d document) request() (spec.Request, error) {
	auth, err := d.Auth.auth()
	if err != nil {
		return spec.Request{}, err
	}

	method := strings.ToUpper(strings.TrimSpace(d.Method))
	if method == "" {
		method = http.MethodGet
	}

	body := d.Body
	if strings.TrimSpace(body) == "" {
		body = spec.EmptyBody
	}

	request := spec.Request{
		Method:  method,
		URL:     d.URL,
		Params:  d.Params,
		Headers: d.Headers,
		Auth:    auth,
		Body:    body,
	}

	return request, nil
}

// auth converts the tagged auth into a [spec.Auth], nil is [spec.NoAuth].
func (a *authDocument) auth() (spec.Auth, error) {
	if a == nil {
		return spec.NoAuth{}, nil
	}

	switch strings.ToLower(a.Type) {
	case spec.KindNone, "":
		return spec.NoAuth{}, nil
	case spec.KindBearer:
		return spec.BearerAuth{Token: a.Token}, nil
	case spec.KindBasic:
		return spec.BasicAuth{Username: a.Username, Password: a.Password}, nil
	case spec.KindCookie:
		return spec.CookieAuth{Value: a.Value}, nil
	default:
		return nil, fmt.Errorf(
			"unknown auth type %q, expected one of %s, %s, %s or %s",
			a.Type,
			spec.KindNone,
			spec.KindBearer,
			spec.KindBasic,
			spec.KindCookie,
		)
	}
}
