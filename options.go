package yadisk

import (
	"net/url"
	"strconv"
	"strings"
)

// Option adds a query parameter to an API call. Options an endpoint does
// not recognize are forwarded verbatim; the service ignores parameters it
// does not know.
type Option func(url.Values)

// WithLimit caps the number of items a listing returns.
func WithLimit(limit int) Option {
	return func(q url.Values) {
		q.Set("limit", strconv.Itoa(limit))
	}
}

// WithOffset skips the first offset items of a listing.
func WithOffset(offset int) Option {
	return func(q url.Values) {
		q.Set("offset", strconv.Itoa(offset))
	}
}

// WithFields restricts the response to the named fields.
func WithFields(fields ...string) Option {
	return func(q url.Values) {
		q.Set("fields", strings.Join(fields, ","))
	}
}

// WithSort orders listing items by the given attribute. Prefix the
// attribute with "-" for descending order.
func WithSort(attribute string) Option {
	return func(q url.Values) {
		q.Set("sort", attribute)
	}
}

// WithMediaType restricts a files listing to the given media types.
func WithMediaType(types ...string) Option {
	return func(q url.Values) {
		q.Set("media_type", strings.Join(types, ","))
	}
}

// WithPreviewSize selects the preview size, e.g. "M" or "120x240".
func WithPreviewSize(size string) Option {
	return func(q url.Values) {
		q.Set("preview_size", size)
	}
}

// WithPreviewCrop crops previews to the exact preview size.
func WithPreviewCrop(crop bool) Option {
	return func(q url.Values) {
		q.Set("preview_crop", strconv.FormatBool(crop))
	}
}

// WithOverwrite lets an upload or copy replace an existing resource.
// Without it the service answers a conflict error for occupied paths.
func WithOverwrite(overwrite bool) Option {
	return func(q url.Values) {
		q.Set("overwrite", strconv.FormatBool(overwrite))
	}
}

// WithPermanently skips the trash when deleting.
func WithPermanently(permanently bool) Option {
	return func(q url.Values) {
		q.Set("permanently", strconv.FormatBool(permanently))
	}
}

// WithForceAsync forces the service to run copy and move asynchronously.
func WithForceAsync(force bool) Option {
	return func(q url.Values) {
		q.Set("force_async", strconv.FormatBool(force))
	}
}

// WithParam forwards an arbitrary query parameter verbatim.
func WithParam(key, value string) Option {
	return func(q url.Values) {
		q.Set(key, value)
	}
}
