package yadisk

import (
	"net/url"

	"github.com/google/uuid"
)

// AuthorizeURL is the OAuth endpoint that issues Disk tokens.
const AuthorizeURL = "https://oauth.yandex.ru/authorize"

// AuthURL builds the URL a user visits to grant the application access to
// their Disk. The granted token is delivered via the implicit flow. Each
// call generates a fresh device id.
func AuthURL(clientID string) string {
	q := url.Values{}
	q.Set("response_type", "token")
	q.Set("client_id", clientID)
	q.Set("device_id", uuid.NewString())
	return AuthorizeURL + "?" + q.Encode()
}
