package infrastructure

import (
	"fmt"

	"github.com/webfleet/webfleet/internal/provisioning"
	"github.com/webfleet/webfleet/internal/util/naming"
)

const phase = "infrastructure"

// ProvisionNetwork provisions the VPC, its public subnets, the internet
// gateway, and the public route table.
func (p *Provisioner) ProvisionNetwork(ctx *provisioning.Context) error {
	cfg := ctx.Config
	ctx.Observer.Printf("[%s] Reconciling network %s...", phase, cfg.Environment)

	vpcName := naming.VPC(cfg.Environment)
	vpcID, err := ctx.Infra.EnsureVPC(ctx, vpcName, cfg.Network.CIDR)
	if err != nil {
		return fmt.Errorf("failed to ensure VPC %s: %w", vpcName, err)
	}
	ctx.State.VPCID = vpcID
	provisioning.LogResourceCreated(ctx.Observer, phase, "vpc", vpcName, vpcID)

	// One public subnet per availability zone, partitioned by index so
	// re-running reproduces the same layout
	subnetCIDRs, err := cfg.SubnetCIDRs()
	if err != nil {
		return err
	}

	subnetIDs := make([]string, 0, len(subnetCIDRs))
	for i, cidr := range subnetCIDRs {
		name := naming.Subnet(cfg.Environment, i)
		az := cfg.Network.AvailabilityZones[i]

		subnetID, err := ctx.Infra.EnsureSubnet(ctx, vpcID, name, cidr, az)
		if err != nil {
			return fmt.Errorf("failed to ensure subnet %s: %w", name, err)
		}
		subnetIDs = append(subnetIDs, subnetID)
		provisioning.LogResourceCreated(ctx.Observer, phase, "subnet", name, subnetID)
	}
	ctx.State.SubnetIDs = subnetIDs

	igwName := naming.InternetGateway(cfg.Environment)
	igwID, err := ctx.Infra.EnsureInternetGateway(ctx, vpcID, igwName)
	if err != nil {
		return fmt.Errorf("failed to ensure internet gateway %s: %w", igwName, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, phase, "internet-gateway", igwName, igwID)

	rtbName := naming.RouteTable(cfg.Environment)
	rtbID, err := ctx.Infra.EnsurePublicRouteTable(ctx, vpcID, igwID, rtbName, subnetIDs)
	if err != nil {
		return fmt.Errorf("failed to ensure route table %s: %w", rtbName, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, phase, "route-table", rtbName, rtbID)

	return nil
}
