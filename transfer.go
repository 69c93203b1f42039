package yadisk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// UploadLink requests a transfer descriptor for uploading to path. Unless
// WithOverwrite(true) is given, an occupied path is a conflict error.
func (c *Client) UploadLink(ctx context.Context, path string, options ...Option) (*Link, error) {
	q := buildQuery(options)
	q.Set("path", path)
	link := new(Link)
	if err := c.doJSON(ctx, http.MethodGet, "/resources/upload", q, nil, link); err != nil {
		return nil, err
	}
	return link, nil
}

// DownloadLink requests a transfer descriptor for downloading path.
func (c *Client) DownloadLink(ctx context.Context, path string, options ...Option) (*Link, error) {
	q := buildQuery(options)
	q.Set("path", path)
	link := new(Link)
	if err := c.doJSON(ctx, http.MethodGet, "/resources/download", q, nil, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Upload stores the local file at localPath as the Disk resource at
// remotePath. The upload link is requested first, so a provider error such
// as a conflict on an occupied path comes back before any bytes move. An
// empty localPath is ErrFileRequired.
func (c *Client) Upload(ctx context.Context, localPath, remotePath string, options ...Option) error {
	link, err := c.UploadLink(ctx, remotePath, options...)
	if err != nil {
		return err
	}
	if localPath == "" {
		return ErrFileRequired
	}
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open upload source: %w", err)
	}
	defer f.Close()
	return c.transferTo(ctx, link, f)
}

// UploadFrom streams r to the Disk resource at remotePath.
func (c *Client) UploadFrom(ctx context.Context, r io.Reader, remotePath string, options ...Option) error {
	link, err := c.UploadLink(ctx, remotePath, options...)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrFileRequired
	}
	return c.transferTo(ctx, link, r)
}

// transferTo streams r to the location named by the transfer descriptor
// and maps the status of the transfer call to a result. Transfers are
// never retried.
func (c *Client) transferTo(ctx context.Context, link *Link, r io.Reader) error {
	method := link.Method
	if method == "" {
		method = http.MethodPut
	}
	req, err := http.NewRequestWithContext(ctx, method, link.Href, r)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return &TransferError{Kind: ErrTimeout}
		}
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusAccepted:
		return nil
	}
	return transferFailure(resp.StatusCode)
}

// Download retrieves the Disk resource at remotePath into the local file
// at localPath. The signed link is followed through one manual redirect
// before the byte stream starts; the local file is closed on every exit
// path.
func (c *Client) Download(ctx context.Context, remotePath, localPath string, options ...Option) error {
	link, err := c.DownloadLink(ctx, remotePath, options...)
	if err != nil {
		return err
	}
	return c.transferFrom(ctx, link, localPath)
}

// DownloadPublic retrieves a published resource, addressed by its public
// key or public URL, into the local file at localPath.
func (c *Client) DownloadPublic(ctx context.Context, publicKey, localPath string, options ...Option) error {
	link, err := c.PublicDownloadLink(ctx, publicKey, options...)
	if err != nil {
		return err
	}
	return c.transferFrom(ctx, link, localPath)
}

// Reader opens the content of the Disk resource at remotePath for reading.
// The caller must close the returned stream.
func (c *Client) Reader(ctx context.Context, remotePath string, options ...Option) (io.ReadCloser, error) {
	link, err := c.DownloadLink(ctx, remotePath, options...)
	if err != nil {
		return nil, err
	}
	return c.openTransfer(ctx, link)
}

func (c *Client) transferFrom(ctx context.Context, link *Link, localPath string) (err error) {
	body, err := c.openTransfer(ctx, link)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create download target: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(f, body)
	return err
}

// openTransfer issues the transfer call without letting the transport
// auto-follow redirects, follows at most one redirect from the Location
// header and returns the byte stream of the final location.
func (c *Client) openTransfer(ctx context.Context, link *Link) (io.ReadCloser, error) {
	method := link.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, link.Href, nil)
	if err != nil {
		return nil, err
	}
	httpc := *c.httpc
	httpc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TransferError{Kind: ErrTimeout}
		}
		return nil, err
	}

	if resp.StatusCode >= http.StatusMultipleChoices && resp.StatusCode < http.StatusBadRequest {
		location := resp.Header.Get("Location")
		resp.Body.Close()
		if location == "" {
			return nil, errors.New("yadisk: redirect without a location header")
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, err
		}
		resp, err = httpc.Do(req)
		if err != nil {
			if isTimeout(err) {
				return nil, &TransferError{Kind: ErrTimeout}
			}
			return nil, err
		}
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusPartialContent:
		return resp.Body, nil
	}
	resp.Body.Close()
	return nil, transferFailure(resp.StatusCode)
}
