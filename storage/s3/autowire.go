package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/artemk/yandex-disk/storage"
)

// Provider is the provider name for Amazon S3.
const Provider = "s3"

// Register registers Amazon S3 as a provider for the disk autowire.
func Register(cfg *storage.AutoWireConfig) {
	cfg.RegisterProvider(Provider, storage.DiskCreatorFunc(NewAutoWire))
}

// NewAutoWire creates a new Amazon S3 disk from an autowire configuration.
func NewAutoWire(ctx context.Context, cfg map[string]interface{}) (storage.Disk, error) {
	if cfg == nil {
		cfg = make(map[string]interface{})
	}

	region, err := stringValue(cfg, "region")
	if err != nil {
		return nil, err
	}
	bucket, err := stringValue(cfg, "bucket")
	if err != nil {
		return nil, err
	}
	accessKeyID, err := stringValue(cfg, "accessKeyId")
	if err != nil {
		return nil, err
	}
	secretAccessKey, err := stringValue(cfg, "secretAccessKey")
	if err != nil {
		return nil, err
	}

	var public bool
	if raw, ok := cfg["public"]; ok {
		if public, ok = raw.(bool); !ok {
			return nil, InvalidConfigValueError{
				Key:     "public",
				Details: fmt.Sprintf("public option must be a boolean but it is '%T'", raw),
			}
		}
	}

	awscfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewDisk(s3.NewFromConfig(awscfg), region, bucket, Public(public)), nil
}

func stringValue(cfg map[string]interface{}, key string) (string, error) {
	value, ok := cfg[key].(string)
	if !ok || value == "" {
		return "", InvalidConfigValueError{
			Key:     key,
			Details: key + " must be set",
		}
	}
	return value, nil
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
