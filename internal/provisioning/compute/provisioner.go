package compute

import (
	"fmt"

	"github.com/webfleet/webfleet/internal/provisioning"
	"github.com/webfleet/webfleet/internal/util/naming"
)

const phase = "compute"

// Provisioner handles compute provisioning (key pair, image, nodes).
type Provisioner struct{}

// NewProvisioner creates a new compute provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "compute"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if len(ctx.State.SubnetIDs) == 0 {
		return fmt.Errorf("compute requires provisioned subnets")
	}
	if ctx.State.ControlSGID == "" || ctx.State.ManagedSGID == "" {
		return fmt.Errorf("compute requires provisioned security groups")
	}

	// 1. Key pair
	if err := p.ProvisionKeyPair(ctx); err != nil {
		return err
	}

	// 2. Machine image, resolved once per run
	imageID, err := ctx.Infra.ResolveImage(ctx, ctx.Config.Image.NamePattern, ctx.Config.Image.Owner)
	if err != nil {
		return fmt.Errorf("failed to resolve machine image: %w", err)
	}
	ctx.State.ImageID = imageID
	ctx.Observer.Printf("[%s] Using image %s", phase, imageID)

	// 3. Control node
	if err := p.ProvisionControlNode(ctx); err != nil {
		return err
	}

	// 4. Managed nodes
	if err := p.ProvisionManagedNodes(ctx); err != nil {
		return err
	}

	return nil
}

// subnetForIndex spreads nodes across the public subnets round-robin.
func subnetForIndex(subnetIDs []string, index int) string {
	return subnetIDs[index%len(subnetIDs)]
}

// nodeNames returns the display names of the managed nodes in index order.
func nodeNames(env string, count int) []string {
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		names = append(names, naming.ManagedNode(env, i))
	}
	return names
}
