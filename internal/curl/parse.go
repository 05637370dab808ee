// Package curl converts between the arguments of a curl command line and a [spec.Request].
//
// [Parse] interprets the words of a tokenized command (see package shell) and [Serialize]
// renders a request back into a single quoted, multi-line command. The two are inverses of
// one another in the sense described by [Equivalent]:
//
//	Equivalent(m, Parse(shell.Tokenize(Serialize(m, options))))
//
// Only the flags that describe the request itself are understood, everything else
// (--location, --compressed, -v etc.) is ignored.
package curl

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"go.followtheprocess.codes/curly/internal/spec"
)

// Command is the program name a command line must start with to be recognised.
const Command = "curl"

// Parse interprets the words of a curl command line as a [spec.Request].
//
// The boolean is false if words is empty or does not start with "curl", this is
// the only failure mode: malformed headers are dropped, undecodable credentials
// are kept as headers and a body that isn't JSON is kept as is.
//
// Parsing happens in two passes. The first walks the flags, the second looks at the
// collected headers and absorbs any recognised Authorization header into the request's
// auth. Because the header pass runs last, an Authorization header always wins over
// -u/--user and -b/--cookie, regardless of where they appear on the command line:
//
//	curl -u alice:secret -H "Authorization: Bearer TOK" // Auth is BearerAuth{Token: "TOK"}
func Parse(words []string) (spec.Request, bool) {
	if len(words) == 0 || words[0] != Command {
		return spec.Request{}, false
	}

	flags := parseFlags(words[1:])
	headers, auth := absorbAuthorization(flags.headers, flags.auth)
	rawURL, params := splitQuery(flags.url)

	method := flags.method
	if method == "" {
		method = http.MethodGet
	}

	body := spec.EmptyBody
	if flags.hasBody {
		body = prettyJSON(flags.body)
	}

	request := spec.Request{
		Method:  method,
		URL:     rawURL,
		Params:  params,
		Headers: headers,
		Auth:    auth,
		Body:    body,
	}

	return request, true
}

// flagResult is the outcome of the flag pass over a command line.
type flagResult struct {
	auth           spec.Auth       // Auth from -u/--user or -b/--cookie, last one wins
	method         string          // Method, empty if never set
	url            string          // The url from --url or the first positional argument
	body           string          // Raw body text from the last data flag
	headers        []spec.KeyValue // Headers in command line order
	methodExplicit bool            // Whether the method was set by -X, -I or -G
	hasBody        bool            // Whether any data flag was seen
}

// parseFlags runs the flag pass over the arguments of a curl command (everything
// after "curl").
func parseFlags(args []string) flagResult {
	result := flagResult{auth: spec.NoAuth{}}

	// next returns the argument following the flag at index i and whether there
	// was one, flags at the end of the line consume nothing
	next := func(i int) (string, bool) {
		if i+1 < len(args) {
			return args[i+1], true
		}

		return "", false
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-X", "--request":
			value, ok := next(i)
			if !ok {
				continue
			}

			if method := strings.ToUpper(strings.TrimSpace(value)); method != "" {
				result.method = method
			}

			result.methodExplicit = true
			i++
		case "-I", "--head":
			result.method = http.MethodHead
			result.methodExplicit = true
		case "-G", "--get":
			result.method = http.MethodGet
			result.methodExplicit = true
		case "-H", "--header":
			value, ok := next(i)
			if !ok {
				continue
			}

			if header, ok := parseHeader(value); ok {
				result.headers = append(result.headers, header)
			}

			i++
		case "--url":
			value, ok := next(i)
			if !ok {
				continue
			}

			result.url = value
			i++
		case "-d", "--data", "--data-raw", "--data-binary", "--data-urlencode":
			value, ok := next(i)
			if !ok {
				continue
			}

			result.body = value
			result.hasBody = true

			if !result.methodExplicit {
				result.method = http.MethodPost
			}

			i++
		case "-b", "--cookie":
			value, ok := next(i)
			if !ok {
				continue
			}

			result.auth = spec.CookieAuth{Value: value}
			i++
		case "-u", "--user":
			value, ok := next(i)
			if !ok {
				continue
			}

			username, password := spec.SplitCredentials(value)
			result.auth = spec.BasicAuth{Username: username, Password: password}
			i++
		default:
			if !strings.HasPrefix(arg, "-") && result.url == "" {
				result.url = arg
			}
		}
	}

	return result
}

// parseHeader parses a "Key: Value" header line, reporting false if there is no
// colon or the key is empty.
func parseHeader(line string) (spec.KeyValue, bool) {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return spec.KeyValue{}, false
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return spec.KeyValue{}, false
	}

	return spec.KeyValue{Key: key, Value: strings.TrimSpace(value)}, true
}

// absorbAuthorization runs the header pass, it takes the auth from the flag pass and
// returns the headers to keep along with the final auth.
//
// Recognised Bearer and Basic Authorization headers replace auth and are removed from
// the headers, everything else is kept in order.
func absorbAuthorization(headers []spec.KeyValue, auth spec.Auth) ([]spec.KeyValue, spec.Auth) {
	var kept []spec.KeyValue

	for _, header := range headers {
		if !strings.EqualFold(header.Key, "Authorization") {
			kept = append(kept, header)
			continue
		}

		if token, ok := credentials(header.Value, "Bearer"); ok {
			auth = spec.BearerAuth{Token: token}
			continue
		}

		if encoded, ok := credentials(header.Value, "Basic"); ok {
			if basic, ok := spec.ParseBasicCredentials(encoded); ok {
				auth = basic
				continue
			}
		}

		kept = append(kept, header)
	}

	return kept, auth
}

// credentials matches an Authorization header value of the form "<scheme> <credentials>",
// the scheme is matched case insensitively and must be followed by whitespace.
func credentials(value, scheme string) (string, bool) {
	if len(value) <= len(scheme) || !strings.EqualFold(value[:len(scheme)], scheme) {
		return "", false
	}

	rest := value[len(scheme):]
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)

	if len(trimmed) == len(rest) || trimmed == "" {
		// No separating whitespace e.g. "Bearerabc", or nothing after it
		return "", false
	}

	return trimmed, true
}

// splitQuery moves the query string of an absolute url into an ordered list of
// params. Anything that isn't an absolute url is returned unchanged with no params.
func splitQuery(raw string) (string, []spec.KeyValue) {
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return raw, nil
	}

	var params []spec.KeyValue

	for pair := range strings.SplitSeq(parsed.RawQuery, "&") {
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		params = append(params, spec.KeyValue{Key: unescape(key), Value: unescape(value)})
	}

	parsed.RawQuery = ""
	parsed.ForceQuery = false

	return parsed.String(), params
}

// unescape decodes a form encoded query component, returning it unchanged
// if it isn't valid.
func unescape(component string) string {
	decoded, err := url.QueryUnescape(component)
	if err != nil {
		return component
	}

	return decoded
}

// prettyJSON re-indents body with two spaces if it is JSON, otherwise it is
// returned unchanged.
func prettyJSON(body string) string {
	raw := bytes.TrimSpace([]byte(body))
	if !json.Valid(raw) {
		return body
	}

	buf := &bytes.Buffer{}
	if err := json.Indent(buf, raw, "", "  "); err != nil {
		return body
	}

	return buf.String()
}
