package spec

import (
	"encoding/base64"
	"strings"
)

// Auth is the authentication strategy attached to a request.
//
// It is a closed set of variants: [NoAuth], [BearerAuth], [BasicAuth] and
// [CookieAuth]. Exactly one is active on a request at any time.
type Auth interface {
	// Kind returns the name of the variant e.g. "bearer".
	Kind() string

	// auth seals the interface to this package.
	auth()
}

// Auth kinds.
const (
	KindNone   = "none"
	KindBearer = "bearer"
	KindBasic  = "basic"
	KindCookie = "cookie"
)

// NoAuth means the request carries no authentication.
type NoAuth struct{}

// BearerAuth is token authentication sent as "Authorization: Bearer <token>".
type BearerAuth struct {
	Token string
}

// BasicAuth is HTTP basic authentication.
type BasicAuth struct {
	Username string
	Password string
}

// CookieAuth is authentication by way of a raw cookie string, as passed to
// curl's --cookie flag.
type CookieAuth struct {
	Value string
}

func (NoAuth) Kind() string     { return KindNone }
func (BearerAuth) Kind() string { return KindBearer }
func (BasicAuth) Kind() string  { return KindBasic }
func (CookieAuth) Kind() string { return KindCookie }

func (NoAuth) auth()     {}
func (BearerAuth) auth() {}
func (BasicAuth) auth()  {}
func (CookieAuth) auth() {}

// Encode returns the base64 encoded "username:password" credentials as sent
// in the Authorization header.
func (b BasicAuth) Encode() string {
	return base64.StdEncoding.EncodeToString([]byte(b.Username + ":" + b.Password))
}

// ParseBasicCredentials decodes base64 encoded credentials into a [BasicAuth].
//
// Unpadded input is accepted. The decoded text is split at the first colon,
// without one the password is empty. The boolean is false if the credentials
// are not valid base64.
func ParseBasicCredentials(encoded string) (BasicAuth, bool) {
	encoded = strings.TrimSpace(encoded)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return BasicAuth{}, false
		}
	}

	username, password := SplitCredentials(string(decoded))

	return BasicAuth{Username: username, Password: password}, true
}

// SplitCredentials splits "user:pass" at the first colon. If there is no colon
// the whole text is the username and the password is empty.
func SplitCredentials(text string) (username, password string) {
	username, password, _ = strings.Cut(text, ":")
	return username, password
}

// AuthKind returns the kind of auth, a nil auth is [KindNone].
func AuthKind(auth Auth) string {
	return AuthOrNone(auth).Kind()
}

// AuthOrNone returns auth, or [NoAuth] if auth is nil.
func AuthOrNone(auth Auth) Auth {
	if auth == nil {
		return NoAuth{}
	}

	return auth
}
