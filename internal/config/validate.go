package config

import (
	"fmt"
	"net"
	"regexp"
)

// Environment names become resource Name tags and DNS-adjacent identifiers,
// so the character set is restricted.
var environmentNameRE = regexp.MustCompile(`^[a-z][a-z0-9-]{0,31}$`)

// Validate checks the configuration for errors that would otherwise only
// surface mid-apply.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if !environmentNameRE.MatchString(c.Environment) {
		return fmt.Errorf("environment %q must be lowercase alphanumeric with hyphens, max 32 chars", c.Environment)
	}

	if _, _, err := net.ParseCIDR(c.Network.CIDR); err != nil {
		return fmt.Errorf("network.cidr %q is invalid: %w", c.Network.CIDR, err)
	}
	if len(c.Network.AvailabilityZones) == 0 {
		return fmt.Errorf("network.availability_zones must not be empty")
	}

	// Partitioning must succeed for every configured zone index; this also
	// rejects zone counts that exceed the subnet space.
	if _, err := c.SubnetCIDRs(); err != nil {
		return err
	}

	if c.ManagedNodes.Count < 1 {
		return fmt.Errorf("managed_nodes.count must be at least 1, got %d", c.ManagedNodes.Count)
	}
	if c.ManagedNodes.HTTPPort < 1 || c.ManagedNodes.HTTPPort > 65535 {
		return fmt.Errorf("managed_nodes.http_port %d is out of range", c.ManagedNodes.HTTPPort)
	}
	if c.SSH.Port < 1 || c.SSH.Port > 65535 {
		return fmt.Errorf("ssh.port %d is out of range", c.SSH.Port)
	}
	if c.SSH.User == "" {
		return fmt.Errorf("ssh.user is required")
	}
	if (c.SSH.PrivateKeyPath == "") != (c.SSH.PublicKeyPath == "") {
		return fmt.Errorf("ssh.private_key_path and ssh.public_key_path must be set together")
	}

	switch c.State.Backend {
	case StateBackendFile:
	case StateBackendS3:
		if c.State.Bucket == "" {
			return fmt.Errorf("state.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("state.backend must be %q or %q, got %q", StateBackendFile, StateBackendS3, c.State.Backend)
	}

	return nil
}
