package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AutoWireConfig contains the configuration for the disk autowire.
type AutoWireConfig struct {
	DefaultDiskName string
	Disks           map[string]DiskCreatorConfig
	Creators        map[string]DiskCreator
}

// DiskCreatorConfig is the configuration for the creation of a single
// storage disk.
type DiskCreatorConfig struct {
	Provider string
	Config   map[string]interface{}
}

// DiskCreator creates storage disks.
type DiskCreator interface {
	CreateDisk(ctx context.Context, cfg map[string]interface{}) (Disk, error)
}

// DiskCreatorFunc creates storage disks.
type DiskCreatorFunc func(context.Context, map[string]interface{}) (Disk, error)

// CreateDisk creates a storage disk.
func (fn DiskCreatorFunc) CreateDisk(ctx context.Context, cfg map[string]interface{}) (Disk, error) {
	return fn(ctx, cfg)
}

// NewAutoWire returns a new autowire configuration with the given providers
// registered:
//
//	aw := storage.NewAutoWire(yandex.Register, s3.Register)
func NewAutoWire(register ...func(*AutoWireConfig)) *AutoWireConfig {
	cfg := &AutoWireConfig{
		Disks:    make(map[string]DiskCreatorConfig),
		Creators: make(map[string]DiskCreator),
	}
	for _, reg := range register {
		reg(cfg)
	}
	return cfg
}

// RegisterProvider registers a storage disk creator under a provider name.
func (cfg *AutoWireConfig) RegisterProvider(name string, creator DiskCreator) {
	cfg.Creators[name] = creator
}

// Configure adds a disk to the configuration.
func (cfg *AutoWireConfig) Configure(diskname, provider string, config map[string]interface{}) {
	if config == nil {
		config = make(map[string]interface{})
	}

	cfg.Disks[diskname] = DiskCreatorConfig{
		Provider: provider,
		Config:   config,
	}
}

// NewManager creates a new Manager with the configured storage disks
// initialized.
func (cfg *AutoWireConfig) NewManager(ctx context.Context) (*Manager, error) {
	m := New()

	for diskname, diskcfg := range cfg.Disks {
		creator, ok := cfg.Creators[diskcfg.Provider]
		if !ok {
			return nil, UnregisteredProviderError{Provider: diskcfg.Provider}
		}

		disk, err := creator.CreateDisk(ctx, diskcfg.Config)
		if err != nil {
			return nil, fmt.Errorf("create disk '%s': %w", diskname, err)
		}

		options := []ConfigureOption{Replace()}
		if diskname == cfg.DefaultDiskName {
			options = append(options, Default())
		}

		if err := m.Configure(diskname, disk, options...); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// UnregisteredProviderError means the configuration contains a disk with an
// unregistered provider.
type UnregisteredProviderError struct {
	Provider string
}

func (err UnregisteredProviderError) Error() string {
	return fmt.Sprintf("unregistered storage provider '%s'", err.Provider)
}

// Load loads the disk configuration from a file. It checks against the
// supported file extensions and returns an error for unsupported filetypes.
func (cfg *AutoWireConfig) Load(path string) error {
	switch ext := filepath.Ext(path); ext {
	case ".yml", ".yaml":
		return cfg.LoadYAML(path)
	default:
		return fmt.Errorf("unknown file extension for disk configuration '%s'", ext)
	}
}

// LoadYAML loads the disk configuration from a YAML file.
func (cfg *AutoWireConfig) LoadYAML(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return cfg.LoadYAMLReader(f)
}

// LoadYAMLReader loads the disk configuration from the YAML in r.
func (cfg *AutoWireConfig) LoadYAMLReader(r io.Reader) error {
	var yamlcfg autowireYamlConfig
	if err := yaml.NewDecoder(r).Decode(&yamlcfg); err != nil {
		return err
	}

	return yamlcfg.apply(cfg)
}

type autowireYamlConfig struct {
	Default string                            `yaml:"default"`
	Disks   map[string]autowireYamlDiskConfig `yaml:"disks"`
}

type autowireYamlDiskConfig struct {
	Provider string                 `yaml:"provider"`
	Config   map[string]interface{} `yaml:"config"`
}

func (ycfg autowireYamlConfig) apply(config *AutoWireConfig) error {
	for diskname, diskcfg := range ycfg.Disks {
		if diskcfg.Provider == "" {
			return InvalidConfigValueError{
				DiskName:  diskname,
				ConfigKey: "provider",
				Details:   "provider must be set",
			}
		}
		config.Configure(diskname, diskcfg.Provider, diskcfg.Config)
	}

	if ycfg.Default != "" {
		if _, ok := config.Disks[ycfg.Default]; !ok {
			return InvalidConfigValueError{
				DiskName:  ycfg.Default,
				ConfigKey: "default",
				Details:   "default names an unconfigured disk",
			}
		}
		config.DefaultDiskName = ycfg.Default
	}

	return nil
}

// InvalidConfigValueError means a configuration value for a disk is missing
// or has a wrong type.
type InvalidConfigValueError struct {
	DiskName  string
	ConfigKey string
	Details   string
}

func (err InvalidConfigValueError) Error() string {
	return fmt.Sprintf("invalid config value for disk '%s': %s: %s", err.DiskName, err.ConfigKey, err.Details)
}
