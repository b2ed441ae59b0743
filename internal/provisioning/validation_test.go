package provisioning

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfleet/webfleet/internal/config"
	"github.com/webfleet/webfleet/internal/platform/aws"
)

func validConfig() *config.Config {
	cfg := &config.Config{Environment: "staging"}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidationPhase_Passes(t *testing.T) {
	ctx := NewContext(context.Background(), validConfig(), &aws.MockClient{})

	err := NewValidationPhase().Provision(ctx)
	assert.NoError(t, err)
}

func TestValidationPhase_InvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "Not Valid!"

	ctx := NewContext(context.Background(), cfg, &aws.MockClient{})
	err := NewValidationPhase().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestValidationPhase_MissingKeyFiles(t *testing.T) {
	cfg := validConfig()
	cfg.SSH.PrivateKeyPath = filepath.Join(t.TempDir(), "missing.pem")
	cfg.SSH.PublicKeyPath = filepath.Join(t.TempDir(), "missing.pub")

	ctx := NewContext(context.Background(), cfg, &aws.MockClient{})
	err := NewValidationPhase().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key file not readable")
}

func TestValidationPhase_ExistingKeyFiles(t *testing.T) {
	dir := t.TempDir()
	priv := filepath.Join(dir, "id_rsa")
	pub := filepath.Join(dir, "id_rsa.pub")
	require.NoError(t, os.WriteFile(priv, []byte("key"), 0o600))
	require.NoError(t, os.WriteFile(pub, []byte("key.pub"), 0o644))

	cfg := validConfig()
	cfg.SSH.PrivateKeyPath = priv
	cfg.SSH.PublicKeyPath = pub

	ctx := NewContext(context.Background(), cfg, &aws.MockClient{})
	assert.NoError(t, NewValidationPhase().Provision(ctx))
}

func TestValidationPhase_LargeFleetWarns(t *testing.T) {
	cfg := validConfig()
	cfg.ManagedNodes.Count = 32

	// Warnings are logged, not fatal
	ctx := NewContext(context.Background(), cfg, &aws.MockClient{})
	assert.NoError(t, NewValidationPhase().Provision(ctx))
}
