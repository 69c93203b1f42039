package yadisk

import (
	"context"
	"net/http"
)

// Publish makes the resource at path publicly accessible and returns a Link
// to its metadata. The public URL appears in the metadata afterwards.
func (c *Client) Publish(ctx context.Context, path string, options ...Option) (*Link, error) {
	q := buildQuery(options)
	q.Set("path", path)
	link := new(Link)
	if err := c.doJSON(ctx, http.MethodPut, "/resources/publish", q, nil, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Unpublish revokes public access to the resource at path.
func (c *Client) Unpublish(ctx context.Context, path string, options ...Option) (*Link, error) {
	q := buildQuery(options)
	q.Set("path", path)
	link := new(Link)
	if err := c.doJSON(ctx, http.MethodPut, "/resources/unpublish", q, nil, link); err != nil {
		return nil, err
	}
	return link, nil
}

// PublicResources returns a page of the user's published resources, in the
// order the service reports them.
func (c *Client) PublicResources(ctx context.Context, options ...Option) (*PublicResourceList, error) {
	list := new(PublicResourceList)
	if err := c.doJSON(ctx, http.MethodGet, "/resources/public", buildQuery(options), nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

// PublicMetadata returns the metadata of a published resource addressed by
// its public key or public URL. No OAuth rights on the resource are needed.
func (c *Client) PublicMetadata(ctx context.Context, publicKey string, options ...Option) (*Resource, error) {
	q := buildQuery(options)
	q.Set("public_key", publicKey)
	res := new(Resource)
	if err := c.doJSON(ctx, http.MethodGet, "/public/resources", q, nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// PublicDownloadLink requests a transfer descriptor for downloading a
// published resource.
func (c *Client) PublicDownloadLink(ctx context.Context, publicKey string, options ...Option) (*Link, error) {
	q := buildQuery(options)
	q.Set("public_key", publicKey)
	link := new(Link)
	if err := c.doJSON(ctx, http.MethodGet, "/public/resources/download", q, nil, link); err != nil {
		return nil, err
	}
	return link, nil
}

// SaveToDownloads copies a published resource into the user's Downloads
// folder and returns the metadata of the saved copy.
func (c *Client) SaveToDownloads(ctx context.Context, publicKey string, options ...Option) (*Resource, error) {
	q := buildQuery(options)
	q.Set("public_key", publicKey)
	res := new(Resource)
	if err := c.doJSON(ctx, http.MethodPost, "/resources/download", q, nil, res); err != nil {
		return nil, err
	}
	return res, nil
}
