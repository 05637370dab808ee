package curly

import (
	"reflect"
	"testing"

	"go.followtheprocess.codes/curly/internal/spec"
	"go.followtheprocess.codes/test"
)

func TestDraftRequest(t *testing.T) {
	tests := []struct {
		name    string       // Name of the test case
		draft   draft        // Draft filled in by the form
		want    spec.Request // Expected request
		wantErr bool         // Whether request should error
	}{
		{
			name:  "minimal",
			draft: draft{Method: "GET", URL: "api.test/items", Auth: spec.KindNone},
			want: spec.Request{
				Method: "GET",
				URL:    "https://api.test/items",
				Auth:   spec.NoAuth{},
				Body:   spec.EmptyBody,
			},
		},
		{
			name: "everything",
			draft: draft{
				Method:   "post",
				URL:      " https://api.test/items ",
				Params:   "page=2\n\nflag\n tag = a \n",
				Headers:  "Accept: application/json\nX-Trace:1\n",
				Auth:     spec.KindBasic,
				Username: "alice",
				Password: "p:w",
				Body:     `{"name": "widget"}`,
			},
			want: spec.Request{
				Method: "POST",
				URL:    "https://api.test/items",
				Params: []spec.KeyValue{
					{Key: "page", Value: "2"},
					{Key: "flag", Value: ""},
					{Key: "tag", Value: "a"},
				},
				Headers: []spec.KeyValue{
					{Key: "Accept", Value: "application/json"},
					{Key: "X-Trace", Value: "1"},
				},
				Auth: spec.BasicAuth{Username: "alice", Password: "p:w"},
				Body: `{"name": "widget"}`,
			},
		},
		{
			name:  "bearer",
			draft: draft{Method: "DELETE", URL: "https://h/1", Auth: spec.KindBearer, Token: " tok "},
			want: spec.Request{
				Method: "DELETE",
				URL:    "https://h/1",
				Auth:   spec.BearerAuth{Token: "tok"},
				Body:   spec.EmptyBody,
			},
		},
		{
			name:  "cookie",
			draft: draft{Method: "GET", URL: "https://h", Auth: spec.KindCookie, Cookie: "a=b"},
			want: spec.Request{
				Method: "GET",
				URL:    "https://h",
				Auth:   spec.CookieAuth{Value: "a=b"},
				Body:   spec.EmptyBody,
			},
		},
		{
			name:    "missing url",
			draft:   draft{Method: "GET", URL: "  "},
			wantErr: true,
		},
		{
			name:    "bad header",
			draft:   draft{Method: "GET", URL: "https://h", Headers: "Accept application/json"},
			wantErr: true,
		},
		{
			name:    "unknown auth",
			draft:   draft{Method: "GET", URL: "https://h", Auth: "digest"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.draft.request()
			test.WantErr(t, err, tt.wantErr)

			if !tt.wantErr {
				test.EqualFunc(t, got, tt.want, func(a, b spec.Request) bool { return reflect.DeepEqual(a, b) })
			}
		})
	}
}

func TestParseHeaders(t *testing.T) {
	_, err := parseHeaders("Accept: */*\n\n: no key\n")
	test.Err(t, err)
	test.Equal(t, err.Error(), `header on line 3 is not of the form 'Key: Value': ": no key"`)

	headers, err := parseHeaders("")
	test.Ok(t, err)
	test.Equal(t, len(headers), 0)
}
