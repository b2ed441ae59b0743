// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/webfleet/webfleet/internal/config"
	"github.com/webfleet/webfleet/internal/orchestration"
	"github.com/webfleet/webfleet/internal/platform/aws"
	"github.com/webfleet/webfleet/internal/platform/s3"
	"github.com/webfleet/webfleet/internal/platform/ssh"
	"github.com/webfleet/webfleet/internal/provisioning"
	"github.com/webfleet/webfleet/internal/statestore"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newInfraClient creates the EC2-backed infrastructure client.
	newInfraClient = func(ctx context.Context, region string) (aws.InfrastructureManager, error) {
		return aws.NewRealClient(ctx, region)
	}

	// newStateStore creates the fingerprint record store for the configured backend.
	newStateStore = func(ctx context.Context, cfg *config.Config) (statestore.Store, error) {
		switch cfg.State.Backend {
		case config.StateBackendS3:
			client, err := s3.NewClient(ctx, cfg.State.Region, s3.Options{Endpoint: cfg.State.Endpoint})
			if err != nil {
				return nil, fmt.Errorf("failed to create state client: %w", err)
			}
			return statestore.NewS3Store(client, cfg.State.Bucket, cfg.State.Path)
		default:
			return statestore.NewFileStore(cfg.State.Path)
		}
	}

	// newRunner creates the SSH runner used against the control node.
	newRunner = func(cfg *config.Config, host string, privateKey []byte) (orchestration.Runner, error) {
		return ssh.NewClient(&ssh.Config{
			Host:        host,
			Port:        cfg.SSH.Port,
			User:        cfg.SSH.User,
			PrivateKey:  privateKey,
			DialTimeout: cfg.SSH.ConnectTimeout,
		})
	}

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// findConfigFile finds the default config file (for testing injection).
	findConfigFile = config.FindConfigFile

	// runWizard collects a config interactively (for testing injection).
	runWizard = config.RunWizard

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile
)

// loadConfig resolves the config path and loads the environment config.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file specified and %w; run 'webfleet init' first", err)
		}
		configPath = path
	}
	return loadConfigFile(configPath)
}

// newProvisioningContext builds the shared phase context.
func newProvisioningContext(ctx context.Context, cfg *config.Config) (*provisioning.Context, error) {
	infra, err := newInfraClient(ctx, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS client: %w", err)
	}
	return provisioning.NewContext(ctx, cfg, infra), nil
}
