package curl

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"slices"
	"strings"

	"go.followtheprocess.codes/curly/internal/spec"
)

// Equivalent reports whether two requests describe the same HTTP request as far
// as a curl command can tell.
//
// Requests are equivalent when they have:
//
//   - The same method, an empty method being GET
//   - The same url once normalised, with the params and any query in the url
//     compared as an unordered collection of pairs
//   - The same headers, ignoring Authorization and a Content-Type of application/json
//     which the serializer adds by default
//   - The same auth, with an empty bearer token or cookie being no auth
//   - The same body, a blank body being an empty object. JSON bodies are compared
//     by value so whitespace, key order and the spelling of numbers (1 and 1.0)
//     don't matter, with the last of any duplicate keys winning
func Equivalent(a, b spec.Request) bool {
	if canonicalMethod(a.Method) != canonicalMethod(b.Method) {
		return false
	}

	urlA, paramsA := canonicalURL(a)
	urlB, paramsB := canonicalURL(b)

	if urlA != urlB || !slices.Equal(paramsA, paramsB) {
		return false
	}

	if !slices.Equal(canonicalHeaders(a), canonicalHeaders(b)) {
		return false
	}

	if canonicalAuth(a.Auth) != canonicalAuth(b.Auth) {
		return false
	}

	return equalBodies(a.Body, b.Body)
}

func canonicalMethod(method string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return http.MethodGet
	}

	return method
}

// canonicalURL returns the normalised url without its query, and the sorted
// params from both the query and the request.
func canonicalURL(request spec.Request) (string, []spec.KeyValue) {
	base, params := splitQuery(spec.NormaliseURL(request.URL))

	for _, param := range request.Params {
		if param.Key != "" {
			params = append(params, param)
		}
	}

	slices.SortFunc(params, compareKeyValue)

	return base, params
}

// canonicalHeaders returns the collapsed headers sorted by key, minus Authorization and
// a default Content-Type.
func canonicalHeaders(request spec.Request) []spec.KeyValue {
	var headers []spec.KeyValue

	for _, header := range request.Header().All() {
		switch {
		case strings.EqualFold(header.Key, "Authorization"):
			continue
		case strings.EqualFold(header.Key, "Content-Type") && header.Value == "application/json":
			continue
		default:
			headers = append(headers, header)
		}
	}

	slices.SortFunc(headers, compareKeyValue)

	return headers
}

func canonicalAuth(auth spec.Auth) spec.Auth {
	switch auth := spec.AuthOrNone(auth).(type) {
	case spec.BearerAuth:
		if auth.Token == "" {
			return spec.NoAuth{}
		}
	case spec.CookieAuth:
		if auth.Value == "" {
			return spec.NoAuth{}
		}
	}

	return spec.AuthOrNone(auth)
}

// canonicalBody is the compacted body if it is JSON, otherwise the trimmed text.
func canonicalBody(body string) string {
	trimmed := bytes.TrimSpace([]byte(body))
	if len(trimmed) == 0 {
		return "{}"
	}

	compact := &bytes.Buffer{}
	if err := json.Compact(compact, trimmed); err != nil {
		return string(trimmed)
	}

	return compact.String()
}

// equalBodies compares two bodies by JSON value if both are JSON, falling back to
// [canonicalBody] otherwise.
func equalBodies(a, b string) bool {
	valueA, okA := decodeJSON(a)
	valueB, okB := decodeJSON(b)

	if okA && okB {
		return equalJSON(valueA, valueB)
	}

	return canonicalBody(a) == canonicalBody(b)
}

// decodeJSON decodes body keeping numbers as written, the boolean is false if
// body isn't a single JSON value.
func decodeJSON(body string) (any, bool) {
	trimmed := bytes.TrimSpace([]byte(body))
	if !json.Valid(trimmed) {
		return nil, false
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, false
	}

	return value, true
}

// equalJSON compares two decoded JSON values.
func equalJSON(a, b any) bool {
	switch a := a.(type) {
	case map[string]any:
		b, ok := b.(map[string]any)
		if !ok || len(a) != len(b) {
			return false
		}

		for key, valueA := range a {
			valueB, ok := b[key]
			if !ok || !equalJSON(valueA, valueB) {
				return false
			}
		}

		return true
	case []any:
		b, ok := b.([]any)
		return ok && slices.EqualFunc(a, b, equalJSON)
	case json.Number:
		b, ok := b.(json.Number)
		return ok && equalNumber(a, b)
	default:
		// string, bool or nil
		return a == b
	}
}

// numberPrecision is the mantissa precision in bits used to compare JSON numbers.
const numberPrecision = 512

// equalNumber compares two JSON numbers by value, falling back to their text if
// either can't be represented.
func equalNumber(a, b json.Number) bool {
	x, _, errA := big.ParseFloat(a.String(), 10, numberPrecision, big.ToNearestEven)
	y, _, errB := big.ParseFloat(b.String(), 10, numberPrecision, big.ToNearestEven)

	if errA != nil || errB != nil {
		return a == b
	}

	return x.Cmp(y) == 0
}

func compareKeyValue(a, b spec.KeyValue) int {
	if c := strings.Compare(a.Key, b.Key); c != 0 {
		return c
	}

	return strings.Compare(a.Value, b.Value)
}
