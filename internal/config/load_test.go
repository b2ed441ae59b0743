package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webfleet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_Minimal(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "environment: demo\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Environment)
	assert.Equal(t, DefaultRegion, cfg.Region)
	assert.Equal(t, DefaultCIDR, cfg.Network.CIDR)
	assert.Equal(t, []string{"us-east-1a"}, cfg.Network.AvailabilityZones)
	assert.Equal(t, DefaultSSHUser, cfg.SSH.User)
	assert.Equal(t, 60*time.Second, cfg.SSH.ConnectTimeout)
	assert.Equal(t, 3, cfg.ManagedNodes.Count)
	assert.Equal(t, 80, cfg.ManagedNodes.HTTPPort)
	assert.Equal(t, StateBackendFile, cfg.State.Backend)
	assert.Equal(t, filepath.Join(".webfleet", "demo", "state.json"), cfg.State.Path)
}

func TestLoadFile_FullConfig(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
environment: prod
region: eu-west-1
network:
  cidr: 172.16.0.0/16
  subnet_new_bits: 4
  availability_zones: [eu-west-1a, eu-west-1b]
ssh:
  user: admin
  private_key_path: /keys/prod
  public_key_path: /keys/prod.pub
  connect_timeout: 30s
control_node:
  instance_type: t3.small
managed_nodes:
  count: 5
  instance_type: t3.medium
  http_port: 8080
image:
  name_pattern: "al2023-ami-*-x86_64"
  owner: amazon
state:
  backend: s3
  bucket: prod-state
  region: eu-west-1
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, 5, cfg.ManagedNodes.Count)
	assert.Equal(t, 8080, cfg.ManagedNodes.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.SSH.ConnectTimeout)
	assert.Equal(t, StateBackendS3, cfg.State.Backend)
	assert.Equal(t, "webfleet/state.json", cfg.State.Path)

	subnets, err := cfg.SubnetCIDRs()
	require.NoError(t, err)
	assert.Equal(t, []string{"172.16.0.0/20", "172.16.16.0/20"}, subnets)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"missing environment", "region: us-east-1\n", "environment is required"},
		{"bad environment name", "environment: Not_Valid\n", "lowercase"},
		{"bad cidr", "environment: demo\nnetwork:\n  cidr: 300.0.0.0/8\n", "invalid"},
		{"bad count", "environment: demo\nmanaged_nodes:\n  count: -1\n", "count"},
		{"lopsided key config", "environment: demo\nssh:\n  private_key_path: /keys/demo\n", "set together"},
		{"bad backend", "environment: demo\nstate:\n  backend: consul\n", "state.backend"},
		{"s3 without bucket", "environment: demo\nstate:\n  backend: s3\n", "state.bucket"},
		{"not yaml", "environment: [unclosed\n", "unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFile(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/keys/id_rsa")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "keys", "id_rsa"), got)

	got, err = ExpandPath("/absolute/path")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", got)
}

func TestInventoryPath(t *testing.T) {
	t.Parallel()
	cfg := &Config{Environment: "demo"}
	assert.Equal(t, filepath.Join(".webfleet", "demo", "inventory"), cfg.InventoryPath())
}
