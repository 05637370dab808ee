package curl_test

import (
	"os"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"go.followtheprocess.codes/curly/internal/curl"
	"go.followtheprocess.codes/curly/internal/spec"
	"go.followtheprocess.codes/snapshot"
	"go.followtheprocess.codes/test"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name    string       // Name of the test case
		request spec.Request // Request to serialise
		want    string       // Expected command line
		options curl.Options // Serialisation options
	}{
		{
			name:    "simple get",
			request: spec.Request{Method: "GET", URL: "https://api.test/items", Body: spec.EmptyBody},
			want:    "curl --location 'https://api.test/items'",
		},
		{
			name:    "empty method is get",
			request: spec.Request{URL: "https://api.test/items"},
			want:    "curl --location 'https://api.test/items'",
		},
		{
			name:    "scheme defaulted",
			request: spec.Request{Method: "GET", URL: "api.test/items"},
			want:    "curl --location 'https://api.test/items'",
		},
		{
			name:    "lower case method",
			request: spec.Request{Method: "head", URL: "https://h"},
			want:    "curl --location -X HEAD 'https://h'",
		},
		{
			name:    "method with shell metacharacters quoted",
			request: spec.Request{Method: "get;touch /tmp/x;", URL: "https://h/p"},
			want:    "curl --location -X 'GET;TOUCH /TMP/X;' 'https://h/p'",
		},
		{
			name:    "method with a space quoted",
			request: spec.Request{Method: "A B", URL: "https://h/p"},
			want:    "curl --location -X 'A B' 'https://h/p'",
		},
		{
			name:    "custom method plain word",
			request: spec.Request{Method: "purge-cache", URL: "https://h/p"},
			want:    "curl --location -X PURGE-CACHE 'https://h/p'",
		},
		{
			name: "params appended to existing query",
			request: spec.Request{
				Method: "GET",
				URL:    "https://h/p?a=1",
				Params: []spec.KeyValue{
					{Key: "b", Value: "2"},
					{Key: "", Value: "ignored"},
					{Key: "c", Value: "d e"},
					{Key: "b", Value: "&"},
				},
			},
			want: "curl --location 'https://h/p?a=1&b=2&c=d+e&b=%26'",
		},
		{
			name: "params on unparseable url",
			request: spec.Request{
				Method: "GET",
				URL:    "https://exa mple.test/x",
				Params: []spec.KeyValue{{Key: "q", Value: "1"}},
			},
			want: "curl --location 'https://exa mple.test/x?q=1'",
		},
		{
			name: "params on empty url",
			request: spec.Request{
				Method: "GET",
				Params: []spec.KeyValue{{Key: "q", Value: "1"}},
			},
			want: "curl --location '?q=1'",
		},
		{
			name: "headers collapsed last wins",
			request: spec.Request{
				Method: "GET",
				URL:    "https://h",
				Headers: []spec.KeyValue{
					{Key: "Accept", Value: "text/plain"},
					{Key: "X-Trace", Value: "1"},
					{Key: "", Value: "dropped"},
					{Key: "Accept", Value: "application/json"},
				},
			},
			want: heredoc.Doc(`
				curl --location 'https://h' \
				  -H 'Accept: application/json' \
				  -H 'X-Trace: 1'`),
		},
		{
			name: "quote escaping",
			request: spec.Request{
				Method:  "GET",
				URL:     "https://h",
				Headers: []spec.KeyValue{{Key: "X-Note", Value: "it's"}},
			},
			want: heredoc.Doc(`
				curl --location 'https://h' \
				  -H 'X-Note: it'\''s'`),
		},
		{
			name: "post json body compacted with default content type",
			request: spec.Request{
				Method: "POST",
				URL:    "https://api.test/items",
				Body:   "{\n  \"name\": \"widget\",\n  \"count\": 2\n}",
			},
			want: heredoc.Doc(`
				curl --location -X POST 'https://api.test/items' \
				  -H 'Content-Type: application/json' \
				  --data-raw '{"name":"widget","count":2}'`),
		},
		{
			name: "existing content type kept",
			request: spec.Request{
				Method:  "PUT",
				URL:     "https://h",
				Headers: []spec.KeyValue{{Key: "content-type", Value: "application/x-www-form-urlencoded"}},
				Body:    "a=1&b=2",
			},
			want: heredoc.Doc(`
				curl --location -X PUT 'https://h' \
				  -H 'content-type: application/x-www-form-urlencoded' \
				  --data-raw 'a=1&b=2'`),
		},
		{
			name: "placeholder body sent on post",
			request: spec.Request{
				Method: "POST",
				URL:    "https://h",
				Body:   spec.EmptyBody,
			},
			want: heredoc.Doc(`
				curl --location -X POST 'https://h' \
				  -H 'Content-Type: application/json' \
				  --data-raw '{}'`),
		},
		{
			name: "blank body not sent",
			request: spec.Request{
				Method: "POST",
				URL:    "https://h",
				Body:   "  \n",
			},
			want: "curl --location -X POST 'https://h'",
		},
		{
			name: "get body dropped by default",
			request: spec.Request{
				Method: "GET",
				URL:    "https://h",
				Body:   `{"a":1}`,
			},
			want: "curl --location 'https://h'",
		},
		{
			name: "get body allowed",
			request: spec.Request{
				Method: "GET",
				URL:    "https://h",
				Body:   `{"a":1}`,
			},
			options: curl.Options{AllowGetBody: true},
			want: heredoc.Doc(`
				curl --location 'https://h' \
				  -H 'Content-Type: application/json' \
				  --data-raw '{"a":1}'`),
		},
		{
			name: "get empty object suppressed even when allowed",
			request: spec.Request{
				Method: "GET",
				URL:    "https://h",
				Body:   "{}",
			},
			options: curl.Options{AllowGetBody: true},
			want:    "curl --location 'https://h'",
		},
		{
			name: "get placeholder suppressed even when allowed",
			request: spec.Request{
				Method: "GET",
				URL:    "https://h",
				Body:   spec.EmptyBody,
			},
			options: curl.Options{AllowGetBody: true},
			want:    "curl --location 'https://h'",
		},
		{
			name: "get empty array allowed",
			request: spec.Request{
				Method: "GET",
				URL:    "https://h",
				Body:   "[]",
			},
			options: curl.Options{AllowGetBody: true},
			want: heredoc.Doc(`
				curl --location 'https://h' \
				  -H 'Content-Type: application/json' \
				  --data-raw '[]'`),
		},
		{
			name: "bearer auth overwrites header in place",
			request: spec.Request{
				Method: "GET",
				URL:    "https://h",
				Headers: []spec.KeyValue{
					{Key: "authorization", Value: "Token old"},
					{Key: "Accept", Value: "*/*"},
				},
				Auth: spec.BearerAuth{Token: "new"},
			},
			want: heredoc.Doc(`
				curl --location 'https://h' \
				  -H 'authorization: Bearer new' \
				  -H 'Accept: */*'`),
		},
		{
			name: "empty bearer token adds nothing",
			request: spec.Request{
				Method: "GET",
				URL:    "https://h",
				Auth:   spec.BearerAuth{},
			},
			want: "curl --location 'https://h'",
		},
		{
			name: "basic auth",
			request: spec.Request{
				Method: "GET",
				URL:    "https://h",
				Auth:   spec.BasicAuth{Username: "alice", Password: "secret"},
			},
			want: heredoc.Doc(`
				curl --location 'https://h' \
				  -H 'Authorization: Basic YWxpY2U6c2VjcmV0'`),
		},
		{
			name: "cookie auth",
			request: spec.Request{
				Method:  "DELETE",
				URL:     "https://h/items/1",
				Headers: []spec.KeyValue{{Key: "Accept", Value: "application/json"}},
				Auth:    spec.CookieAuth{Value: "session=abc; it's=1"},
			},
			want: heredoc.Doc(`
				curl --location -X DELETE 'https://h/items/1' \
				  -H 'Accept: application/json' \
				  --cookie 'session=abc; it'\''s=1'`),
		},
		{
			name: "everything",
			request: spec.Request{
				Method:  "PATCH",
				URL:     "https://api.test/items/1",
				Params:  []spec.KeyValue{{Key: "dry_run", Value: "true"}},
				Headers: []spec.KeyValue{{Key: "Accept", Value: "application/json"}},
				Auth:    spec.CookieAuth{Value: "session=abc"},
				Body:    `{"name": "it's"}`,
			},
			want: heredoc.Doc(`
				curl --location -X PATCH 'https://api.test/items/1?dry_run=true' \
				  -H 'Accept: application/json' \
				  -H 'Content-Type: application/json' \
				  --cookie 'session=abc' \
				  --data-raw '{"name":"it'\''s"}'`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Diff(t, curl.Serialize(tt.request, tt.options), tt.want)
		})
	}
}

func TestSerializeSnapshot(t *testing.T) {
	tests := []struct {
		name    string       // Name of the test case
		request spec.Request // Request to serialise
	}{
		{
			name: "json api",
			request: spec.Request{
				Method: "POST",
				URL:    "https://api.test/v1/orders",
				Params: []spec.KeyValue{{Key: "idempotent", Value: "true"}},
				Headers: []spec.KeyValue{
					{Key: "Accept", Value: "application/json"},
					{Key: "X-Request-Id", Value: "b7a1c9"},
				},
				Auth: spec.BearerAuth{Token: "eyJhbGciOiJIUzI1NiJ9.e30.sig"},
				Body: "{\n  \"sku\": \"ABC-1\",\n  \"quantity\": 3\n}",
			},
		},
		{
			name: "form post",
			request: spec.Request{
				Method:  "POST",
				URL:     "//legacy.test/login.php",
				Headers: []spec.KeyValue{{Key: "Content-Type", Value: "application/x-www-form-urlencoded"}},
				Auth:    spec.BasicAuth{Username: "admin", Password: "p@ss:word"},
				Body:    "user=admin&remember=1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshot.New(
				t,
				snapshot.Update(*update),
				snapshot.Clean(*clean),
				snapshot.Color(os.Getenv("CI") == ""),
			)

			snap.Snap(curl.Serialize(tt.request, curl.Options{}))
		})
	}
}
