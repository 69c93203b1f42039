package yadisk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Info returns the general metadata of the user's Disk.
func (c *Client) Info(ctx context.Context, options ...Option) (*DiskInfo, error) {
	info := new(DiskInfo)
	if err := c.doJSON(ctx, http.MethodGet, "", buildQuery(options), nil, info); err != nil {
		return nil, err
	}
	return info, nil
}

// Metadata returns the metadata of the file or folder at path. Folder
// metadata embeds a listing of the folder contents.
func (c *Client) Metadata(ctx context.Context, path string, options ...Option) (*Resource, error) {
	q := buildQuery(options)
	q.Set("path", path)
	res := new(Resource)
	if err := c.doJSON(ctx, http.MethodGet, "/resources", q, nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Operation reports the status of an asynchronous operation by the id from
// an operation Link.
func (c *Client) Operation(ctx context.Context, id string) (*OperationStatus, error) {
	status := new(OperationStatus)
	if err := c.doJSON(ctx, http.MethodGet, "/operations/"+url.PathEscape(id), nil, nil, status); err != nil {
		return nil, err
	}
	return status, nil
}

// Files returns a page of the flat listing of all files on Disk, in the
// order the service reports them.
func (c *Client) Files(ctx context.Context, options ...Option) (*FileList, error) {
	list := new(FileList)
	if err := c.doJSON(ctx, http.MethodGet, "/resources/files", buildQuery(options), nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

// LastUploaded returns the most recently uploaded files.
func (c *Client) LastUploaded(ctx context.Context, options ...Option) (*LastUploadedList, error) {
	list := new(LastUploadedList)
	if err := c.doJSON(ctx, http.MethodGet, "/resources/last-uploaded", buildQuery(options), nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Update patches the custom properties of the resource at path and returns
// the updated metadata. Setting a property to nil removes it.
func (c *Client) Update(ctx context.Context, path string, properties map[string]interface{}, options ...Option) (*Resource, error) {
	q := buildQuery(options)
	q.Set("path", path)
	body := struct {
		CustomProperties map[string]interface{} `json:"custom_properties"`
	}{properties}
	res := new(Resource)
	if err := c.doJSON(ctx, http.MethodPatch, "/resources", q, body, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Copy copies the resource at from to the path to. Large copies run
// asynchronously and answer with an operation Link.
func (c *Client) Copy(ctx context.Context, from, to string, options ...Option) (*Link, error) {
	q := buildQuery(options)
	q.Set("from", from)
	q.Set("path", to)
	link := new(Link)
	if err := c.doJSON(ctx, http.MethodPost, "/resources/copy", q, nil, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Move moves the resource at from to the path to. Large moves run
// asynchronously and answer with an operation Link.
func (c *Client) Move(ctx context.Context, from, to string, options ...Option) (*Link, error) {
	q := buildQuery(options)
	q.Set("from", from)
	q.Set("path", to)
	link := new(Link)
	if err := c.doJSON(ctx, http.MethodPost, "/resources/move", q, nil, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Mkdir creates the folder at path. Missing parent folders are an error;
// see CreateFolder for creating a whole hierarchy.
func (c *Client) Mkdir(ctx context.Context, path string, options ...Option) (*Link, error) {
	q := buildQuery(options)
	q.Set("path", path)
	link := new(Link)
	if err := c.doJSON(ctx, http.MethodPut, "/resources", q, nil, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Delete removes the file or folder at path, into the trash unless
// WithPermanently(true) is given. The service answers with an operation
// Link for asynchronous removal or with an empty body; an empty body is
// success and yields a nil Link.
func (c *Client) Delete(ctx context.Context, path string, options ...Option) (*Link, error) {
	q := buildQuery(options)
	q.Set("path", path)
	link := new(Link)
	if err := c.doJSON(ctx, http.MethodDelete, "/resources", q, nil, link); err != nil {
		return nil, err
	}
	if link.Href == "" {
		return nil, nil
	}
	return link, nil
}

// CreateFolder creates the folder at path and returns the requested path.
// With force set, a missing ancestor hierarchy is created first, shortest
// prefix to longest; folders that already exist are left alone. Requesting
// the root of the scheme is an identity case that succeeds without a call.
func (c *Client) CreateFolder(ctx context.Context, path string, force bool) (string, error) {
	scheme, segments := splitResourcePath(path)
	if len(segments) == 0 {
		return scheme + "/", nil
	}
	_, err := c.Mkdir(ctx, path)
	if err == nil || IsAlreadyExists(err) {
		return path, nil
	}
	if !force || !isParentMissing(err) {
		return "", err
	}
	for i := range segments {
		prefix := scheme + "/" + strings.Join(segments[:i+1], "/")
		if _, err := c.Mkdir(ctx, prefix); err != nil && !IsAlreadyExists(err) {
			return "", err
		}
	}
	return path, nil
}

// splitResourcePath splits a resource path into its scheme and its
// non-empty segments. Paths without a scheme default to "disk:".
func splitResourcePath(path string) (scheme string, segments []string) {
	scheme = "disk:"
	if i := strings.Index(path, ":"); i >= 0 {
		scheme = path[:i+1]
		path = path[i+1:]
	}
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return scheme, segments
}
