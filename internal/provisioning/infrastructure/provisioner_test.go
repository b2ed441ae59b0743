package infrastructure

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfleet/webfleet/internal/config"
	"github.com/webfleet/webfleet/internal/platform/aws"
	"github.com/webfleet/webfleet/internal/provisioning"
)

func newTestContext(mock *aws.MockClient) *provisioning.Context {
	cfg := &config.Config{
		Environment: "staging",
		Network: config.NetworkConfig{
			AvailabilityZones: []string{"us-east-1a", "us-east-1b"},
		},
	}
	cfg.ApplyDefaults()
	return provisioning.NewContext(context.Background(), cfg, mock)
}

func TestProvisionNetwork(t *testing.T) {
	var subnetCIDRs []string
	var routeTableSubnets []string

	mock := &aws.MockClient{
		EnsureVPCFunc: func(_ context.Context, name, cidr string) (string, error) {
			assert.Equal(t, "staging", name)
			assert.Equal(t, "10.0.0.0/16", cidr)
			return "vpc-123", nil
		},
		EnsureSubnetFunc: func(_ context.Context, vpcID, name, cidr, az string) (string, error) {
			assert.Equal(t, "vpc-123", vpcID)
			subnetCIDRs = append(subnetCIDRs, cidr)
			return fmt.Sprintf("subnet-%s", az), nil
		},
		EnsurePublicRouteTableFunc: func(_ context.Context, vpcID, igwID, name string, subnetIDs []string) (string, error) {
			assert.Equal(t, "vpc-123", vpcID)
			routeTableSubnets = subnetIDs
			return "rtb-123", nil
		},
	}

	ctx := newTestContext(mock)
	require.NoError(t, NewProvisioner().ProvisionNetwork(ctx))

	assert.Equal(t, "vpc-123", ctx.State.VPCID)
	// Subnets are carved from the VPC range by zone index
	assert.Equal(t, []string{"10.0.0.0/24", "10.0.1.0/24"}, subnetCIDRs)
	assert.Equal(t, []string{"subnet-us-east-1a", "subnet-us-east-1b"}, ctx.State.SubnetIDs)
	assert.Equal(t, ctx.State.SubnetIDs, routeTableSubnets, "all public subnets must be associated to the route table")
}

func TestProvisionNetwork_VPCFailure(t *testing.T) {
	mock := &aws.MockClient{
		EnsureVPCFunc: func(_ context.Context, _, _ string) (string, error) {
			return "", fmt.Errorf("api down")
		},
	}

	err := NewProvisioner().ProvisionNetwork(newTestContext(mock))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure VPC")
}

func TestProvisionSecurityGroups(t *testing.T) {
	created := map[string]aws.RuleSet{}

	mock := &aws.MockClient{
		EnsureSecurityGroupFunc: func(_ context.Context, vpcID, name, _ string, rules aws.RuleSet) (string, error) {
			assert.Equal(t, "vpc-123", vpcID)
			created[name] = rules
			return "sg-" + name, nil
		},
	}

	ctx := newTestContext(mock)
	ctx.State.VPCID = "vpc-123"

	require.NoError(t, NewProvisioner().ProvisionSecurityGroups(ctx))

	assert.Equal(t, "sg-staging-control", ctx.State.ControlSGID)
	assert.Equal(t, "sg-staging-web", ctx.State.ManagedSGID)

	control := created["staging-control"]
	require.Len(t, control.Ingress, 1)
	assert.Equal(t, int32(22), control.Ingress[0].Port)

	managed := created["staging-web"]
	require.Len(t, managed.Ingress, 2)
	assert.Equal(t, int32(22), managed.Ingress[0].Port)
	assert.Equal(t, int32(80), managed.Ingress[1].Port)
}

func TestProvisionSecurityGroups_RequiresVPC(t *testing.T) {
	ctx := newTestContext(&aws.MockClient{})

	err := NewProvisioner().ProvisionSecurityGroups(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "require a provisioned VPC")
}

func TestBuildRuleSet_SingleEgressRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ingress []aws.IngressRule
	}{
		{name: "no ingress", ingress: nil},
		{name: "one ingress", ingress: []aws.IngressRule{{Description: "SSH access", Port: 22}}},
		{
			name: "many ingress",
			ingress: []aws.IngressRule{
				{Description: "SSH access", Port: 22},
				{Description: "HTTP access", Port: 80},
				{Description: "HTTPS access", Port: 443},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rules := BuildRuleSet(tt.ingress)

			assert.Len(t, rules.Ingress, len(tt.ingress), "one ingress rule per pair")
			require.Len(t, rules.Egress, 1, "exactly one egress rule regardless of ingress")
			assert.True(t, rules.Egress[0].AllTraffic)
		})
	}
}

func TestProvision_RunsNetworkThenSecurityGroups(t *testing.T) {
	var order []string

	mock := &aws.MockClient{
		EnsureVPCFunc: func(_ context.Context, _, _ string) (string, error) {
			order = append(order, "vpc")
			return "vpc-123", nil
		},
		EnsureSecurityGroupFunc: func(_ context.Context, _, name, _ string, _ aws.RuleSet) (string, error) {
			order = append(order, name)
			return "sg-" + name, nil
		},
	}

	ctx := newTestContext(mock)
	require.NoError(t, NewProvisioner().Provision(ctx))
	assert.Equal(t, []string{"vpc", "staging-control", "staging-web"}, order)
}
