// Package yadisk is a client for the Yandex Disk REST API.
//
// A Client is an immutable handle created once per OAuth token. Every
// operation issues a single HTTP call (transfer operations issue two: one
// for the signed link and one for the byte stream) and returns a typed
// result. The client keeps no state between calls and never retries.
package yadisk

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the Yandex Disk REST API endpoint.
const DefaultBaseURL = "https://cloud-api.yandex.net/v1/disk"

// Client is a handle for the Yandex Disk REST API. It is immutable after
// construction and safe for concurrent use. The zero value is not usable;
// create clients with NewClient.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// ClientOption configures a Client during construction.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for tests.
func WithBaseURL(rawurl string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(rawurl, "/")
	}
}

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// NewClient returns a client authorized with the given OAuth token.
// Construction performs no I/O and does not validate the token; a bad token
// surfaces as an *Error on the first call.
func NewClient(token string, options ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		httpc:   http.DefaultClient,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "OAuth "+c.token)
	return req, nil
}

// do issues a request against the API and returns the raw response.
// The caller owns the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, query, nil)
	if err != nil {
		return nil, err
	}
	return c.httpc.Do(req)
}

// doJSON issues a request and decodes the JSON response into out. A body
// carrying an "error" field decodes into an *Error instead, which is
// returned verbatim. An empty body leaves out untouched.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := decodeError(resp.StatusCode, data); err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// buildQuery applies the caller's options to a fresh query. Callers set
// positional parameters such as "path" afterwards so they always win.
func buildQuery(options []Option) url.Values {
	q := url.Values{}
	for _, opt := range options {
		if opt != nil {
			opt(q)
		}
	}
	return q
}
