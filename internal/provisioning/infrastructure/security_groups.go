package infrastructure

import (
	"fmt"

	"github.com/webfleet/webfleet/internal/platform/aws"
	"github.com/webfleet/webfleet/internal/provisioning"
	"github.com/webfleet/webfleet/internal/util/naming"
)

// BuildRuleSet turns (description, port) pairs into a rule set with one
// ingress rule per pair and exactly one allow-all egress rule, regardless
// of the ingress list.
func BuildRuleSet(ingress []aws.IngressRule) aws.RuleSet {
	return aws.RuleSet{
		Ingress: ingress,
		Egress: []aws.EgressRule{
			{Description: "Allow all outbound traffic", AllTraffic: true},
		},
	}
}

// ProvisionSecurityGroups provisions the control-node and managed-node
// security groups. The control node only accepts SSH; managed nodes accept
// SSH and the configured HTTP port.
func (p *Provisioner) ProvisionSecurityGroups(ctx *provisioning.Context) error {
	cfg := ctx.Config
	if ctx.State.VPCID == "" {
		return fmt.Errorf("security groups require a provisioned VPC")
	}

	sshPort := int32(cfg.SSH.Port) //nolint:gosec // validated to 1..65535
	httpPort := int32(cfg.ManagedNodes.HTTPPort)

	controlName := naming.ControlSecurityGroup(cfg.Environment)
	controlRules := BuildRuleSet([]aws.IngressRule{
		{Description: "SSH access", Port: sshPort},
	})

	controlID, err := ctx.Infra.EnsureSecurityGroup(ctx, ctx.State.VPCID, controlName, "Control node access", controlRules)
	if err != nil {
		return fmt.Errorf("failed to ensure security group %s: %w", controlName, err)
	}
	ctx.State.ControlSGID = controlID
	provisioning.LogResourceCreated(ctx.Observer, phase, "security-group", controlName, controlID)

	managedName := naming.ManagedSecurityGroup(cfg.Environment)
	managedRules := BuildRuleSet([]aws.IngressRule{
		{Description: "SSH access", Port: sshPort},
		{Description: "HTTP access", Port: httpPort},
	})

	managedID, err := ctx.Infra.EnsureSecurityGroup(ctx, ctx.State.VPCID, managedName, "Web node access", managedRules)
	if err != nil {
		return fmt.Errorf("failed to ensure security group %s: %w", managedName, err)
	}
	ctx.State.ManagedSGID = managedID
	provisioning.LogResourceCreated(ctx.Observer, phase, "security-group", managedName, managedID)

	return nil
}
