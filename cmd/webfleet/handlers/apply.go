package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/webfleet/webfleet/internal/inventory"
	"github.com/webfleet/webfleet/internal/orchestration"
	"github.com/webfleet/webfleet/internal/provisioning"
	"github.com/webfleet/webfleet/internal/provisioning/compute"
	"github.com/webfleet/webfleet/internal/provisioning/infrastructure"
	"github.com/webfleet/webfleet/internal/ui"
)

// Apply provisions the environment and runs the configuration step.
//
// The workflow:
//  1. Loads and validates the environment configuration
//  2. Runs the validation, infrastructure, and compute phases
//  3. Writes the inventory of managed-node public addresses
//  4. Runs the fingerprint-gated configuration step on the control node
func Apply(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Applying environment: %s", cfg.Environment)

	pctx, err := newProvisioningContext(ctx, cfg)
	if err != nil {
		return err
	}

	phases := []provisioning.Phase{
		provisioning.NewValidationPhase(),
		infrastructure.NewProvisioner(),
		compute.NewProvisioner(),
	}
	if err := provisioning.RunPhases(pctx, phases); err != nil {
		return err
	}

	addrs := pctx.State.ManagedAddresses()

	// The inventory must exist before the orchestration step reads it
	if err := inventory.Write(cfg.InventoryPath(), addrs); err != nil {
		return err
	}
	log.Printf("Inventory written to %s", cfg.InventoryPath())

	if err := runOrchestration(ctx, pctx, addrs); err != nil {
		return err
	}

	fmt.Println(ui.ApplySummary(cfg.Environment, pctx.State.ControlNode.PublicIP, addrs))
	return nil
}

// runOrchestration wires the state store and SSH runner, then runs the
// configuration pass against the control node.
func runOrchestration(ctx context.Context, pctx *provisioning.Context, addrs []string) error {
	cfg := pctx.Config

	store, err := newStateStore(ctx, cfg)
	if err != nil {
		return err
	}

	privateKey, err := compute.LoadPrivateKey(cfg)
	if err != nil {
		return err
	}

	if pctx.State.ControlNode == nil {
		return fmt.Errorf("control node missing after compute phase")
	}

	runner, err := newRunner(cfg, pctx.State.ControlNode.PublicIP, privateKey)
	if err != nil {
		return fmt.Errorf("failed to create SSH client: %w", err)
	}

	orch, err := orchestration.New(cfg, store, runner, privateKey, pctx.Observer)
	if err != nil {
		return err
	}

	return orch.Run(ctx, addrs)
}
