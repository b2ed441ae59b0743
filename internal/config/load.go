package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied by LoadFile when the config file omits them.
const (
	DefaultRegion             = "us-east-1"
	DefaultCIDR               = "10.0.0.0/16"
	DefaultSubnetNewBits      = 8
	DefaultSSHUser            = "ec2-user"
	DefaultSSHPort            = 22
	DefaultConnectTimeout     = 60 * time.Second
	DefaultInstanceType       = "t3.micro"
	DefaultManagedCount       = 3
	DefaultHTTPPort           = 80
	DefaultImageNamePattern   = "amzn2-ami-kernel-5.10-hvm-*-x86_64-gp2"
	DefaultImageOwner         = "amazon"
	DefaultStateBackend       = StateBackendFile
	defaultStateFileName      = "state.json"
	defaultStateS3ObjectKey   = "webfleet/state.json"
	defaultAvailabilityZoneID = "a"
)

// LoadFile reads, defaults, and validates the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := cfg.expandKeyPaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindConfigFile returns the default config file path if it exists in the
// current directory.
func FindConfigFile() (string, error) {
	if _, err := os.Stat(DefaultFileName); err != nil {
		return "", fmt.Errorf("%s not found in current directory", DefaultFileName)
	}
	return DefaultFileName, nil
}

// ApplyDefaults fills in every unset field with its default value.
func (c *Config) ApplyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Network.CIDR == "" {
		c.Network.CIDR = DefaultCIDR
	}
	if c.Network.SubnetNewBits == 0 {
		c.Network.SubnetNewBits = DefaultSubnetNewBits
	}
	if len(c.Network.AvailabilityZones) == 0 {
		c.Network.AvailabilityZones = []string{c.Region + defaultAvailabilityZoneID}
	}
	if c.SSH.User == "" {
		c.SSH.User = DefaultSSHUser
	}
	if c.SSH.Port == 0 {
		c.SSH.Port = DefaultSSHPort
	}
	if c.SSH.ConnectTimeout == 0 {
		c.SSH.ConnectTimeout = DefaultConnectTimeout
	}
	if c.ControlNode.InstanceType == "" {
		c.ControlNode.InstanceType = DefaultInstanceType
	}
	if c.ManagedNodes.Count == 0 {
		c.ManagedNodes.Count = DefaultManagedCount
	}
	if c.ManagedNodes.InstanceType == "" {
		c.ManagedNodes.InstanceType = DefaultInstanceType
	}
	if c.ManagedNodes.HTTPPort == 0 {
		c.ManagedNodes.HTTPPort = DefaultHTTPPort
	}
	if c.Image.NamePattern == "" {
		c.Image.NamePattern = DefaultImageNamePattern
	}
	if c.Image.Owner == "" {
		c.Image.Owner = DefaultImageOwner
	}
	if c.State.Backend == "" {
		c.State.Backend = DefaultStateBackend
	}
	if c.State.Path == "" {
		switch c.State.Backend {
		case StateBackendS3:
			c.State.Path = defaultStateS3ObjectKey
		default:
			c.State.Path = filepath.Join(stateDir(c.Environment), defaultStateFileName)
		}
	}
	if c.State.Region == "" {
		c.State.Region = c.Region
	}
}

// expandKeyPaths resolves ~ in the configured SSH key locations.
func (c *Config) expandKeyPaths() error {
	if c.SSH.PrivateKeyPath != "" {
		p, err := ExpandPath(c.SSH.PrivateKeyPath)
		if err != nil {
			return err
		}
		c.SSH.PrivateKeyPath = p
	}
	if c.SSH.PublicKeyPath != "" {
		p, err := ExpandPath(c.SSH.PublicKeyPath)
		if err != nil {
			return err
		}
		c.SSH.PublicKeyPath = p
	}
	return nil
}
