package yadisk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ClearTrash permanently removes the trashed resource at path, or empties
// the whole trash when path is empty. The outcome is carried by the HTTP
// status, not the body: 204 means removed, 202 means removal is still in
// progress.
func (c *Client) ClearTrash(ctx context.Context, path string, options ...Option) (TrashStatus, error) {
	q := buildQuery(options)
	if path != "" {
		q.Set("path", path)
	}
	resp, err := c.do(ctx, http.MethodDelete, "/trash/resources", q)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return TrashRemoved, nil
	case http.StatusAccepted:
		return TrashRemoving, nil
	case http.StatusNotFound:
		return "", notFoundError(resp)
	}
	return "", responseError(resp)
}

// RestoreTrash puts the trashed resource at path back to its original
// location. Like ClearTrash, the outcome is carried by the HTTP status:
// 201 means restored, 202 means restoration is still in progress.
func (c *Client) RestoreTrash(ctx context.Context, path string, options ...Option) (TrashStatus, error) {
	q := buildQuery(options)
	q.Set("path", path)
	resp, err := c.do(ctx, http.MethodPut, "/trash/resources/restore", q)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return TrashRestored, nil
	case http.StatusAccepted:
		return TrashRestoring, nil
	case http.StatusNotFound:
		return "", notFoundError(resp)
	}
	return "", responseError(resp)
}

// notFoundError returns the provider's own not-found error when the body
// carries one and synthesizes it otherwise, so a 404 is a not-found error
// regardless of body content.
func notFoundError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	var e Error
	if len(data) > 0 {
		if err := json.Unmarshal(data, &e); err == nil && e.Code != "" {
			e.StatusCode = resp.StatusCode
			return &e
		}
	}
	return &Error{
		Code:        codeNotFound,
		Description: "no resource at the given path",
		StatusCode:  resp.StatusCode,
	}
}

// responseError converts an unexpected response into an *Error.
func responseError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	if err := decodeError(resp.StatusCode, data); err != nil {
		return err
	}
	return &Error{
		Code:        http.StatusText(resp.StatusCode),
		Description: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		StatusCode:  resp.StatusCode,
	}
}
