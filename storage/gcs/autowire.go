package gcs

import (
	"context"
	"fmt"
	"os"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/artemk/yandex-disk/storage"
)

// Provider is the provider name for Google Cloud Storage.
const Provider = "gcs"

// Register registers Google Cloud Storage as a provider for the disk
// autowire.
func Register(cfg *storage.AutoWireConfig) {
	cfg.RegisterProvider(Provider, storage.DiskCreatorFunc(NewAutoWire))
}

// NewAutoWire creates a new Google Cloud Storage disk from an autowire
// configuration.
func NewAutoWire(ctx context.Context, cfg map[string]interface{}) (storage.Disk, error) {
	if cfg == nil {
		cfg = make(map[string]interface{})
	}

	serviceAccountPath, ok := cfg["serviceAccount"].(string)
	if !ok || serviceAccountPath == "" {
		return nil, InvalidConfigValueError{
			Key:     "serviceAccount",
			Details: "service account path must be set",
		}
	}

	if _, err := os.Stat(serviceAccountPath); err != nil {
		return nil, InvalidConfigValueError{
			Key:     "serviceAccount",
			Details: fmt.Sprintf("service account file not found: %v", err),
		}
	}

	bucket, ok := cfg["bucket"].(string)
	if !ok || bucket == "" {
		return nil, InvalidConfigValueError{
			Key:     "bucket",
			Details: "storage bucket must be set",
		}
	}

	public, err := publicOption(cfg)
	if err != nil {
		return nil, err
	}

	client, err := gcs.NewClient(ctx, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		return nil, err
	}

	return NewDisk(client, bucket, Public(public)), nil
}

func publicOption(cfg map[string]interface{}) (bool, error) {
	raw, ok := cfg["public"]
	if !ok {
		return false, nil
	}
	public, ok := raw.(bool)
	if !ok {
		return false, InvalidConfigValueError{
			Key:     "public",
			Details: fmt.Sprintf("public option must be a boolean but it is '%T'", raw),
		}
	}
	return public, nil
}

// InvalidConfigValueError means the autowire configuration has an invalid
// config value.
type InvalidConfigValueError struct {
	Key     string
	Details string
}

func (err InvalidConfigValueError) Error() string {
	return fmt.Sprintf("invalid configuration value for key '%s': %s", err.Key, err.Details)
}
