// Package yandex provides the Yandex Disk storage disk.
package yandex

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	yadisk "github.com/artemk/yandex-disk"
)

const listPageSize = 100

// Disk is the Yandex Disk storage disk.
type Disk struct {
	Client *yadisk.Client
	Config Config
}

// Config is the disk configuration.
type Config struct {
	BaseDir string
}

// Option is a disk configuration option.
type Option func(*Config)

// BaseDir roots all disk paths below the given Disk folder.
func BaseDir(dir string) Option {
	return func(cfg *Config) {
		cfg.BaseDir = dir
	}
}

// NewDisk creates a new Yandex Disk storage disk.
func NewDisk(client *yadisk.Client, options ...Option) *Disk {
	if client == nil {
		panic("invalid yandex disk client")
	}

	var cfg Config
	for _, opt := range options {
		opt(&cfg)
	}

	return &Disk{
		Client: client,
		Config: cfg,
	}
}

// absPath maps a disk path to a scheme-prefixed resource path below the
// configured base directory.
func (d *Disk) absPath(path string) string {
	segments := make([]string, 0, 2)
	if base := strings.Trim(d.Config.BaseDir, "/"); base != "" {
		segments = append(segments, base)
	}
	if p := strings.Trim(path, "/"); p != "" {
		segments = append(segments, p)
	}
	return "disk:/" + strings.Join(segments, "/")
}

// Put writes b to the file at the given path, replacing an existing file.
func (d *Disk) Put(ctx context.Context, path string, b []byte) error {
	return d.Client.UploadFrom(ctx, bytes.NewReader(b), d.absPath(path), yadisk.WithOverwrite(true))
}

// Get retrieves the file at the given path.
func (d *Disk) Get(ctx context.Context, path string) ([]byte, error) {
	r, err := d.Client.Reader(ctx, d.absPath(path))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// Delete permanently deletes the file at the given path.
func (d *Disk) Delete(ctx context.Context, path string) error {
	_, err := d.Client.Delete(ctx, d.absPath(path), yadisk.WithPermanently(true))
	return err
}

// GetURL returns the public URL for the file at the given path, publishing
// the file first.
func (d *Disk) GetURL(ctx context.Context, path string) (string, error) {
	abs := d.absPath(path)
	if _, err := d.Client.Publish(ctx, abs); err != nil {
		return "", err
	}

	res, err := d.Client.Metadata(ctx, abs, yadisk.WithFields("public_url"))
	if err != nil {
		return "", err
	}
	if res.PublicURL == "" {
		return "", fmt.Errorf("no public url for '%s'", abs)
	}

	return res.PublicURL, nil
}

// List enumerates the files stored below the given path prefix.
func (d *Disk) List(ctx context.Context, prefix string) ([]string, error) {
	abs := d.absPath(prefix)

	var paths []string
	for offset := 0; ; offset += listPageSize {
		page, err := d.Client.Files(ctx, yadisk.WithLimit(listPageSize), yadisk.WithOffset(offset))
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			if strings.HasPrefix(item.Path, abs) {
				paths = append(paths, item.Path)
			}
		}
		if len(page.Items) < listPageSize {
			return paths, nil
		}
	}
}
