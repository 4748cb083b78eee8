package http

import "encoding/base64"

// Authorization holds a basic-auth credential pair. It is immutable after
// construction and consumed by reference when a request is built.
type Authorization struct {
	Username string
	Password string
}

// NewAuthorization creates an Authorization from a principal (usually an
// email address or account name) and a secret (usually an API token).
func NewAuthorization(username, password string) *Authorization {
	return &Authorization{
		Username: username,
		Password: password,
	}
}

// HeaderValue returns the value for an Authorization header using the
// Basic scheme.
func (a *Authorization) HeaderValue() string {
	creds := a.Username + ":" + a.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
}
