package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultFileName is the config file looked up when none is specified.
const DefaultFileName = "webfleet.yaml"

// Config holds the full environment configuration.
type Config struct {
	// Environment names the deployment and prefixes every resource name.
	Environment string `yaml:"environment"`
	// Region is the AWS region resources are created in.
	Region string `yaml:"region"`

	Network      NetworkConfig      `yaml:"network"`
	SSH          SSHConfig          `yaml:"ssh"`
	ControlNode  ControlNodeConfig  `yaml:"control_node"`
	ManagedNodes ManagedNodesConfig `yaml:"managed_nodes"`
	Image        ImageConfig        `yaml:"image"`
	State        StateConfig        `yaml:"state"`
}

// NetworkConfig describes the VPC and its public subnets.
type NetworkConfig struct {
	// CIDR is the VPC address range.
	CIDR string `yaml:"cidr"`
	// SubnetNewBits is the prefix extension used to partition the VPC range
	// into subnets (8 turns a /16 into /24 subnets).
	SubnetNewBits int `yaml:"subnet_new_bits"`
	// AvailabilityZones lists the zones to create one public subnet in each.
	AvailabilityZones []string `yaml:"availability_zones"`
}

// SSHConfig describes how the control node is reached.
type SSHConfig struct {
	User           string        `yaml:"user"`
	Port           int           `yaml:"port"`
	PrivateKeyPath string        `yaml:"private_key_path"`
	PublicKeyPath  string        `yaml:"public_key_path"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// ControlNodeConfig describes the single configuration-management node.
type ControlNodeConfig struct {
	InstanceType string `yaml:"instance_type"`
}

// ManagedNodesConfig describes the web-server replicas.
type ManagedNodesConfig struct {
	Count        int    `yaml:"count"`
	InstanceType string `yaml:"instance_type"`
	HTTPPort     int    `yaml:"http_port"`
}

// ImageConfig selects the machine image. The most recently published AMI
// matching the pattern wins at apply time; pin the pattern to pin the image.
type ImageConfig struct {
	NamePattern string `yaml:"name_pattern"`
	Owner       string `yaml:"owner"`
}

// State backend identifiers.
const (
	StateBackendFile = "file"
	StateBackendS3   = "s3"
)

// StateConfig selects where the last-applied fingerprint record lives.
type StateConfig struct {
	Backend string `yaml:"backend"`
	// Path is the record file location for the file backend, and the object
	// key for the s3 backend.
	Path string `yaml:"path"`
	// Bucket, Region and Endpoint configure the s3 backend. Endpoint is only
	// needed for S3-compatible stores outside AWS.
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// InventoryPath is where apply writes the rendered inventory before the
// orchestration step reads it.
func (c *Config) InventoryPath() string {
	return filepath.Join(stateDir(c.Environment), "inventory")
}

// DefaultKeyDir is where generated key pairs are stored when no key paths
// are configured.
func (c *Config) DefaultKeyDir() string {
	return stateDir(c.Environment)
}

func stateDir(env string) string {
	return filepath.Join(".webfleet", env)
}

// SubnetCIDRs partitions the VPC range into one subnet per availability
// zone. Partitioning is deterministic by index, so re-running produces the
// same layout.
func (c *Config) SubnetCIDRs() ([]string, error) {
	cidrs := make([]string, 0, len(c.Network.AvailabilityZones))
	for i := range c.Network.AvailabilityZones {
		s, err := CIDRSubnet(c.Network.CIDR, c.Network.SubnetNewBits, i)
		if err != nil {
			return nil, fmt.Errorf("failed to compute subnet %d: %w", i, err)
		}
		cidrs = append(cidrs, s)
	}
	return cidrs, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
