package handlers

import (
	"context"
	"log"

	"github.com/webfleet/webfleet/internal/provisioning"
	"github.com/webfleet/webfleet/internal/provisioning/destroy"
)

// Destroy tears the environment down and drops its state record.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Destroying environment: %s", cfg.Environment)

	pctx, err := newProvisioningContext(ctx, cfg)
	if err != nil {
		return err
	}

	if err := provisioning.RunPhases(pctx, []provisioning.Phase{destroy.NewProvisioner()}); err != nil {
		return err
	}

	// Without the record the next apply reruns the configuration step
	store, err := newStateStore(ctx, cfg)
	if err != nil {
		return err
	}
	if err := store.Delete(ctx); err != nil {
		return err
	}

	log.Printf("Environment %s destroyed", cfg.Environment)
	return nil
}
