package destroy

import (
	"fmt"

	"github.com/webfleet/webfleet/internal/provisioning"
	"github.com/webfleet/webfleet/internal/util/naming"
)

const phase = "destroy"

// Provisioner tears an environment down in reverse dependency order:
// instances, security groups, key pair, route table, internet gateway,
// subnets, VPC.
type Provisioner struct{}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "destroy"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config
	env := cfg.Environment
	ctx.Observer.Printf("[%s] Starting teardown for environment %s...", phase, env)

	// Instances first; termination waits for completion so security group
	// references are released before the groups are deleted
	names := []string{naming.ControlNode(env)}
	for i := 0; i < cfg.ManagedNodes.Count; i++ {
		names = append(names, naming.ManagedNode(env, i))
	}
	for _, name := range names {
		provisioning.LogResourceDeleting(ctx.Observer, phase, "instance", name)
		if err := ctx.Infra.TerminateInstance(ctx, name); err != nil {
			return fmt.Errorf("failed to terminate instance %s: %w", name, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, phase, "instance", name)
	}

	for _, sg := range []string{naming.ControlSecurityGroup(env), naming.ManagedSecurityGroup(env)} {
		provisioning.LogResourceDeleting(ctx.Observer, phase, "security-group", sg)
		if err := ctx.Infra.DeleteSecurityGroup(ctx, sg); err != nil {
			return fmt.Errorf("failed to delete security group %s: %w", sg, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, phase, "security-group", sg)
	}

	keyName := naming.KeyPair(env)
	provisioning.LogResourceDeleting(ctx.Observer, phase, "key-pair", keyName)
	if err := ctx.Infra.DeleteKeyPair(ctx, keyName); err != nil {
		return fmt.Errorf("failed to delete key pair %s: %w", keyName, err)
	}

	rtbName := naming.RouteTable(env)
	provisioning.LogResourceDeleting(ctx.Observer, phase, "route-table", rtbName)
	if err := ctx.Infra.DeleteRouteTable(ctx, rtbName); err != nil {
		return fmt.Errorf("failed to delete route table %s: %w", rtbName, err)
	}

	vpcName := naming.VPC(env)
	vpcID, err := ctx.Infra.GetVPCID(ctx, vpcName)
	if err != nil {
		return fmt.Errorf("failed to look up VPC %s: %w", vpcName, err)
	}
	if vpcID == "" {
		ctx.Observer.Printf("[%s] VPC %s not found, nothing left to delete", phase, vpcName)
		return nil
	}

	igwName := naming.InternetGateway(env)
	provisioning.LogResourceDeleting(ctx.Observer, phase, "internet-gateway", igwName)
	if err := ctx.Infra.DeleteInternetGateway(ctx, vpcID, igwName); err != nil {
		return fmt.Errorf("failed to delete internet gateway %s: %w", igwName, err)
	}

	for i := range cfg.Network.AvailabilityZones {
		name := naming.Subnet(env, i)
		provisioning.LogResourceDeleting(ctx.Observer, phase, "subnet", name)
		if err := ctx.Infra.DeleteSubnet(ctx, name); err != nil {
			return fmt.Errorf("failed to delete subnet %s: %w", name, err)
		}
	}

	provisioning.LogResourceDeleting(ctx.Observer, phase, "vpc", vpcName)
	if err := ctx.Infra.DeleteVPC(ctx, vpcName); err != nil {
		return fmt.Errorf("failed to delete VPC %s: %w", vpcName, err)
	}
	provisioning.LogResourceDeleted(ctx.Observer, phase, "vpc", vpcName)

	ctx.Observer.Printf("[%s] Environment %s destroyed", phase, env)
	return nil
}
