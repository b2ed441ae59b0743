package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/webfleet/webfleet/internal/inventory"
	"github.com/webfleet/webfleet/internal/ui"
	"github.com/webfleet/webfleet/internal/util/naming"
)

// Plan reports, per desired resource, whether it exists and whether the
// configuration step is stale. Nothing is mutated.
func Plan(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Planning environment: %s", cfg.Environment)

	infra, err := newInfraClient(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	report := ui.PlanReport{Environment: cfg.Environment}

	vpcName := naming.VPC(cfg.Environment)
	vpcID, err := infra.GetVPCID(ctx, vpcName)
	if err != nil {
		return fmt.Errorf("failed to look up VPC %s: %w", vpcName, err)
	}
	report.Resources = append(report.Resources, ui.ResourceStatus{
		Type: "vpc", Name: vpcName, Exists: vpcID != "", ID: vpcID,
	})

	controlName := naming.ControlNode(cfg.Environment)
	control, err := infra.GetInstanceByName(ctx, controlName)
	if err != nil {
		return fmt.Errorf("failed to look up instance %s: %w", controlName, err)
	}
	status := ui.ResourceStatus{Type: "instance", Name: controlName, Exists: control != nil}
	if control != nil {
		status.ID = control.ID
	}
	report.Resources = append(report.Resources, status)

	var addrs []string
	allNodesUp := true
	for i := 0; i < cfg.ManagedNodes.Count; i++ {
		name := naming.ManagedNode(cfg.Environment, i)
		node, err := infra.GetInstanceByName(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to look up instance %s: %w", name, err)
		}

		status := ui.ResourceStatus{Type: "instance", Name: name, Exists: node != nil}
		if node != nil {
			status.ID = node.ID
			addrs = append(addrs, node.PublicIP)
		} else {
			allNodesUp = false
		}
		report.Resources = append(report.Resources, status)
	}

	report.AddressesKnown = allNodesUp
	if allNodesUp {
		report.CurrentFingerprint = inventory.Fingerprint(addrs)
	}

	store, err := newStateStore(ctx, cfg)
	if err != nil {
		return err
	}
	record, err := store.Get(ctx)
	if err != nil {
		return err
	}
	if record != nil {
		report.StoredFingerprint = record.InventoryFingerprint
	}

	fmt.Println(report.Render())
	return nil
}
