package curly

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/charmbracelet/huh"
	"go.followtheprocess.codes/curly/internal/curl"
	"go.followtheprocess.codes/curly/internal/spec"
)

// methods are the choices offered by the interactive builder.
//
//nolint:gochecknoglobals // Must be a var to be passed to huh
var methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// BuildOptions are the options passed to the root command when it builds
// a request interactively.
type BuildOptions struct {
	// AllowGetBody sends the body of a GET request rather than dropping it.
	AllowGetBody bool

	// Debug enables debug logging.
	Debug bool
}

// draft is the raw text collected by the interactive builder.
type draft struct {
	Method   string // Chosen method
	URL      string // URL as typed
	Params   string // One key=value per line
	Headers  string // One "Key: Value" per line
	Auth     string // Auth kind e.g. "bearer"
	Token    string // Bearer token
	Username string // Basic auth username
	Password string // Basic auth password
	Cookie   string // Raw cookie string
	Body     string // Request body
}

// Build implements the root command, prompting for the parts of a request and printing
// the resulting curl command.
func (c Curly) Build(ctx context.Context, options BuildOptions) error {
	logger := c.logger.Prefixed("build")

	d := draft{Method: http.MethodGet, Auth: spec.KindNone}

	if err := d.form(c).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			logger.Debug("User aborted the form")
			return nil
		}

		return fmt.Errorf("could not build request: %w", err)
	}

	request, err := d.request()
	if err != nil {
		return err
	}

	logger.Debug(
		"Built request",
		slog.String("method", request.Method),
		slog.String("url", request.URL),
		slog.String("auth", spec.AuthKind(request.Auth)),
	)

	// The form is drawn on stderr, so the summary goes there too and stdout is just the command
	fmt.Fprintf(c.stderr, "\n%s %s\n\n", highlight.Text(request.Method), dimmed.Text(request.URL))
	fmt.Fprintln(c.stdout, curl.Serialize(request, curl.Options{AllowGetBody: options.AllowGetBody}))

	return nil
}

// form returns the interactive form that fills in d.
func (d *draft) form(c Curly) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Method").
				Options(huh.NewOptions(methods...)...).
				Value(&d.Method),
			huh.NewInput().
				Title("URL").
				Placeholder("https://api.example.com/items").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("url cannot be empty")
					}

					return nil
				}).
				Value(&d.URL),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Query parameters").
				Description("One key=value per line").
				Value(&d.Params),
			huh.NewText().
				Title("Headers").
				Description("One 'Key: Value' per line").
				Validate(func(s string) error {
					_, err := parseHeaders(s)
					return err
				}).
				Value(&d.Headers),
			huh.NewSelect[string]().
				Title("Auth").
				Options(huh.NewOptions(spec.KindNone, spec.KindBearer, spec.KindBasic, spec.KindCookie)...).
				Value(&d.Auth),
		),
		huh.NewGroup(
			huh.NewInput().Title("Bearer token").EchoMode(huh.EchoModePassword).Value(&d.Token),
		).WithHideFunc(func() bool { return d.Auth != spec.KindBearer }),
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&d.Username),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&d.Password),
		).WithHideFunc(func() bool { return d.Auth != spec.KindBasic }),
		huh.NewGroup(
			huh.NewInput().Title("Cookie").Placeholder("session=abc123").Value(&d.Cookie),
		).WithHideFunc(func() bool { return d.Auth != spec.KindCookie }),
		huh.NewGroup(
			huh.NewText().Title("Body").Description("JSON is compacted, anything else is sent as is").Value(&d.Body),
		).WithHideFunc(func() bool { return d.Method == http.MethodHead }),
	).WithInput(c.stdin).WithOutput(c.stderr)
}

// request converts the draft into a [spec.Request].
func (d draft) request() (spec.Request, error) {
	if strings.TrimSpace(d.URL) == "" {
		return spec.Request{}, errors.New("url cannot be empty")
	}

	headers, err := parseHeaders(d.Headers)
	if err != nil {
		return spec.Request{}, err
	}

	var auth spec.Auth

	switch d.Auth {
	case spec.KindBearer:
		auth = spec.BearerAuth{Token: strings.TrimSpace(d.Token)}
	case spec.KindBasic:
		auth = spec.BasicAuth{Username: d.Username, Password: d.Password}
	case spec.KindCookie:
		auth = spec.CookieAuth{Value: strings.TrimSpace(d.Cookie)}
	case spec.KindNone, "":
		auth = spec.NoAuth{}
	default:
		return spec.Request{}, fmt.Errorf("unknown auth type %q", d.Auth)
	}

	body := d.Body
	if strings.TrimSpace(body) == "" {
		body = spec.EmptyBody
	}

	request := spec.Request{
		Method:  strings.ToUpper(strings.TrimSpace(d.Method)),
		URL:     spec.NormaliseURL(d.URL),
		Params:  parseParams(d.Params),
		Headers: headers,
		Auth:    auth,
		Body:    body,
	}

	return request, nil
}

// parseParams parses one key=value pair per line, blank lines are skipped and a line
// with no "=" is a key with an empty value.
func parseParams(text string) []spec.KeyValue {
	var params []spec.KeyValue

	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, _ := strings.Cut(line, "=")
		params = append(params, spec.KeyValue{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)})
	}

	return params
}

// parseHeaders parses one "Key: Value" header per line, blank lines are skipped.
func parseHeaders(text string) ([]spec.KeyValue, error) {
	var headers []spec.KeyValue

	lineNo := 0
	for line := range strings.Lines(text) {
		lineNo++

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("header on line %d is not of the form 'Key: Value': %q", lineNo, line)
		}

		headers = append(headers, spec.KeyValue{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)})
	}

	return headers, nil
}
