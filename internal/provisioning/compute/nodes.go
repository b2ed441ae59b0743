package compute

import (
	"fmt"

	"github.com/webfleet/webfleet/internal/platform/aws"
	"github.com/webfleet/webfleet/internal/provisioning"
	"github.com/webfleet/webfleet/internal/util/naming"
)

// ProvisionControlNode ensures the single configuration-management node.
func (p *Provisioner) ProvisionControlNode(ctx *provisioning.Context) error {
	cfg := ctx.Config
	name := naming.ControlNode(cfg.Environment)

	provisioning.LogResourceCreating(ctx.Observer, phase, "instance", name)
	node, err := ctx.Infra.EnsureInstance(ctx, aws.InstanceCreateOpts{
		Name:            name,
		ImageID:         ctx.State.ImageID,
		InstanceType:    cfg.ControlNode.InstanceType,
		KeyName:         ctx.State.KeyPairName,
		SubnetID:        subnetForIndex(ctx.State.SubnetIDs, 0),
		SecurityGroupID: ctx.State.ControlSGID,
		UserData:        controlNodeUserData,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure control node %s: %w", name, err)
	}

	ctx.State.ControlNode = node
	provisioning.LogResourceCreated(ctx.Observer, phase, "instance", name, node.ID)
	return nil
}

// ProvisionManagedNodes ensures the web-server replicas with sequential
// display-name suffixes. Nodes are kept in index order so the inventory
// and its fingerprint are deterministic.
func (p *Provisioner) ProvisionManagedNodes(ctx *provisioning.Context) error {
	cfg := ctx.Config
	names := nodeNames(cfg.Environment, cfg.ManagedNodes.Count)

	nodes := make([]*aws.Instance, 0, len(names))
	for i, name := range names {
		provisioning.LogResourceCreating(ctx.Observer, phase, "instance", name)
		node, err := ctx.Infra.EnsureInstance(ctx, aws.InstanceCreateOpts{
			Name:            name,
			ImageID:         ctx.State.ImageID,
			InstanceType:    cfg.ManagedNodes.InstanceType,
			KeyName:         ctx.State.KeyPairName,
			SubnetID:        subnetForIndex(ctx.State.SubnetIDs, i),
			SecurityGroupID: ctx.State.ManagedSGID,
		})
		if err != nil {
			return fmt.Errorf("failed to ensure managed node %s: %w", name, err)
		}
		nodes = append(nodes, node)
		ctx.Observer.Progress(phase, i+1, len(names))
	}

	ctx.State.ManagedNodes = nodes
	return nil
}
