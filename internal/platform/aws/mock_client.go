package aws

import "context"

// MockClient is a func-field test double for InfrastructureManager.
// Unset funcs return benign defaults so tests only wire what they assert.
type MockClient struct {
	// Network
	EnsureVPCFunc              func(ctx context.Context, name, cidr string) (string, error)
	GetVPCIDFunc               func(ctx context.Context, name string) (string, error)
	EnsureSubnetFunc           func(ctx context.Context, vpcID, name, cidr, availabilityZone string) (string, error)
	EnsureInternetGatewayFunc  func(ctx context.Context, vpcID, name string) (string, error)
	EnsurePublicRouteTableFunc func(ctx context.Context, vpcID, igwID, name string, subnetIDs []string) (string, error)
	DeleteRouteTableFunc       func(ctx context.Context, name string) error
	DeleteInternetGatewayFunc  func(ctx context.Context, vpcID, name string) error
	DeleteSubnetFunc           func(ctx context.Context, name string) error
	DeleteVPCFunc              func(ctx context.Context, name string) error

	// Security groups
	EnsureSecurityGroupFunc func(ctx context.Context, vpcID, name, description string, rules RuleSet) (string, error)
	DeleteSecurityGroupFunc func(ctx context.Context, name string) error

	// Images
	ResolveImageFunc func(ctx context.Context, namePattern, owner string) (string, error)

	// Key pairs
	EnsureKeyPairFunc func(ctx context.Context, name string, publicKey []byte) (string, error)
	DeleteKeyPairFunc func(ctx context.Context, name string) error

	// Instances
	EnsureInstanceFunc    func(ctx context.Context, opts InstanceCreateOpts) (*Instance, error)
	GetInstanceByNameFunc func(ctx context.Context, name string) (*Instance, error)
	TerminateInstanceFunc func(ctx context.Context, name string) error
}

func (m *MockClient) EnsureVPC(ctx context.Context, name, cidr string) (string, error) {
	if m.EnsureVPCFunc != nil {
		return m.EnsureVPCFunc(ctx, name, cidr)
	}
	return "vpc-mock", nil
}

func (m *MockClient) GetVPCID(ctx context.Context, name string) (string, error) {
	if m.GetVPCIDFunc != nil {
		return m.GetVPCIDFunc(ctx, name)
	}
	return "vpc-mock", nil
}

func (m *MockClient) EnsureSubnet(ctx context.Context, vpcID, name, cidr, availabilityZone string) (string, error) {
	if m.EnsureSubnetFunc != nil {
		return m.EnsureSubnetFunc(ctx, vpcID, name, cidr, availabilityZone)
	}
	return "subnet-mock", nil
}

func (m *MockClient) EnsureInternetGateway(ctx context.Context, vpcID, name string) (string, error) {
	if m.EnsureInternetGatewayFunc != nil {
		return m.EnsureInternetGatewayFunc(ctx, vpcID, name)
	}
	return "igw-mock", nil
}

func (m *MockClient) EnsurePublicRouteTable(ctx context.Context, vpcID, igwID, name string, subnetIDs []string) (string, error) {
	if m.EnsurePublicRouteTableFunc != nil {
		return m.EnsurePublicRouteTableFunc(ctx, vpcID, igwID, name, subnetIDs)
	}
	return "rtb-mock", nil
}

func (m *MockClient) DeleteRouteTable(ctx context.Context, name string) error {
	if m.DeleteRouteTableFunc != nil {
		return m.DeleteRouteTableFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) DeleteInternetGateway(ctx context.Context, vpcID, name string) error {
	if m.DeleteInternetGatewayFunc != nil {
		return m.DeleteInternetGatewayFunc(ctx, vpcID, name)
	}
	return nil
}

func (m *MockClient) DeleteSubnet(ctx context.Context, name string) error {
	if m.DeleteSubnetFunc != nil {
		return m.DeleteSubnetFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) DeleteVPC(ctx context.Context, name string) error {
	if m.DeleteVPCFunc != nil {
		return m.DeleteVPCFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) EnsureSecurityGroup(ctx context.Context, vpcID, name, description string, rules RuleSet) (string, error) {
	if m.EnsureSecurityGroupFunc != nil {
		return m.EnsureSecurityGroupFunc(ctx, vpcID, name, description, rules)
	}
	return "sg-mock", nil
}

func (m *MockClient) DeleteSecurityGroup(ctx context.Context, name string) error {
	if m.DeleteSecurityGroupFunc != nil {
		return m.DeleteSecurityGroupFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) ResolveImage(ctx context.Context, namePattern, owner string) (string, error) {
	if m.ResolveImageFunc != nil {
		return m.ResolveImageFunc(ctx, namePattern, owner)
	}
	return "ami-mock", nil
}

func (m *MockClient) EnsureKeyPair(ctx context.Context, name string, publicKey []byte) (string, error) {
	if m.EnsureKeyPairFunc != nil {
		return m.EnsureKeyPairFunc(ctx, name, publicKey)
	}
	return "key-mock", nil
}

func (m *MockClient) DeleteKeyPair(ctx context.Context, name string) error {
	if m.DeleteKeyPairFunc != nil {
		return m.DeleteKeyPairFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) EnsureInstance(ctx context.Context, opts InstanceCreateOpts) (*Instance, error) {
	if m.EnsureInstanceFunc != nil {
		return m.EnsureInstanceFunc(ctx, opts)
	}
	return &Instance{ID: "i-mock", Name: opts.Name, State: "running", PublicIP: "198.51.100.10", PrivateIP: "10.0.0.10"}, nil
}

func (m *MockClient) GetInstanceByName(ctx context.Context, name string) (*Instance, error) {
	if m.GetInstanceByNameFunc != nil {
		return m.GetInstanceByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockClient) TerminateInstance(ctx context.Context, name string) error {
	if m.TerminateInstanceFunc != nil {
		return m.TerminateInstanceFunc(ctx, name)
	}
	return nil
}
