package yandex

import (
	"context"
	"fmt"

	yadisk "github.com/artemk/yandex-disk"
	"github.com/artemk/yandex-disk/storage"
)

// Provider is the provider name for Yandex Disk.
const Provider = "yandex"

// Register registers Yandex Disk as a provider for the disk autowire.
func Register(cfg *storage.AutoWireConfig) {
	cfg.RegisterProvider(Provider, storage.DiskCreatorFunc(NewAutoWire))
}

// NewAutoWire creates a new Yandex Disk storage disk from an autowire
// configuration.
func NewAutoWire(_ context.Context, cfg map[string]interface{}) (storage.Disk, error) {
	if cfg == nil {
		cfg = make(map[string]interface{})
	}

	token, ok := cfg["token"].(string)
	if !ok || token == "" {
		return nil, InvalidConfigValueError{
			Key:     "token",
			Details: "oauth token must be set",
		}
	}

	var clientOptions []yadisk.ClientOption
	if raw, ok := cfg["baseUrl"]; ok {
		baseURL, ok := raw.(string)
		if !ok || baseURL == "" {
			return nil, InvalidConfigValueError{
				Key:     "baseUrl",
				Details: fmt.Sprintf("baseUrl must be a non-empty string but it is '%T'", raw),
			}
		}
		clientOptions = append(clientOptions, yadisk.WithBaseURL(baseURL))
	}

	var diskOptions []Option
	if raw, ok := cfg["baseDir"]; ok {
		baseDir, ok := raw.(string)
		if !ok {
			return nil, InvalidConfigValueError{
				Key:     "baseDir",
				Details: fmt.Sprintf("baseDir must be a string but it is '%T'", raw),
			}
		}
		diskOptions = append(diskOptions, BaseDir(baseDir))
	}

	return NewDisk(yadisk.NewClient(token, clientOptions...), diskOptions...), nil
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
