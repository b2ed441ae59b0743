package compute

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/webfleet/webfleet/internal/config"
	"github.com/webfleet/webfleet/internal/provisioning"
	"github.com/webfleet/webfleet/internal/util/keygen"
	"github.com/webfleet/webfleet/internal/util/naming"
)

const generatedKeyBits = 4096

// ProvisionKeyPair registers the environment's public key with EC2. When no
// key paths are configured a pair is generated once under the environment's
// key directory and reused on later runs.
func (p *Provisioner) ProvisionKeyPair(ctx *provisioning.Context) error {
	publicKey, err := LoadPublicKey(ctx.Config)
	if err != nil {
		return err
	}

	name := naming.KeyPair(ctx.Config.Environment)
	if _, err := ctx.Infra.EnsureKeyPair(ctx, name, publicKey); err != nil {
		return fmt.Errorf("failed to ensure key pair %s: %w", name, err)
	}
	ctx.State.KeyPairName = name
	provisioning.LogResourceCreated(ctx.Observer, phase, "key-pair", name, name)

	return nil
}

// LoadPublicKey returns the public key material for the environment,
// generating a pair under the key directory if none is configured.
func LoadPublicKey(cfg *config.Config) ([]byte, error) {
	if cfg.SSH.PublicKeyPath != "" {
		data, err := os.ReadFile(cfg.SSH.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read public key: %w", err)
		}
		return data, nil
	}

	_, pubPath := generatedKeyPaths(cfg)
	if data, err := os.ReadFile(pubPath); err == nil {
		return data, nil
	}

	return generateKeyPair(cfg)
}

// LoadPrivateKey returns the private key material for the environment.
// Provisioning must have run first when the pair is generated.
func LoadPrivateKey(cfg *config.Config) ([]byte, error) {
	path := cfg.SSH.PrivateKeyPath
	if path == "" {
		path, _ = generatedKeyPaths(cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key %s: %w", path, err)
	}
	return data, nil
}

func generatedKeyPaths(cfg *config.Config) (privPath, pubPath string) {
	dir := cfg.DefaultKeyDir()
	return filepath.Join(dir, "id_rsa"), filepath.Join(dir, "id_rsa.pub")
}

func generateKeyPair(cfg *config.Config) ([]byte, error) {
	pair, err := keygen.GenerateRSAKeyPair(generatedKeyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	privPath, pubPath := generatedKeyPaths(cfg)
	if err := os.MkdirAll(filepath.Dir(privPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(privPath, pair.PrivateKey, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(pubPath, pair.PublicKey, 0o644); err != nil { //nolint:gosec // public half
		return nil, fmt.Errorf("failed to write public key: %w", err)
	}

	return pair.PublicKey, nil
}
