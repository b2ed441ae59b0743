package aws

import (
	"context"
)

// IngressRule opens a single TCP port to the world.
// All ingress rules use TCP and an unrestricted source range.
type IngressRule struct {
	Description string
	Port        int32
}

// EgressRule permits outbound traffic. The only shape webfleet emits is a
// single allow-all rule.
type EgressRule struct {
	Description string
	AllTraffic  bool
}

// RuleSet is the desired traffic policy for a security group.
type RuleSet struct {
	Ingress []IngressRule
	Egress  []EgressRule
}

// Instance is the subset of EC2 instance state the provisioner needs.
type Instance struct {
	ID        string
	Name      string
	State     string
	PublicIP  string
	PrivateIP string
	PublicDNS string
}

// InstanceCreateOpts holds all parameters for launching an instance.
type InstanceCreateOpts struct {
	Name            string
	ImageID         string
	InstanceType    string
	KeyName         string
	SubnetID        string
	SecurityGroupID string
	// UserData is the plain-text first-boot script; it is base64-encoded on
	// the wire by the client.
	UserData string
}

// NetworkManager manages the VPC, its subnets, and public routing.
type NetworkManager interface {
	EnsureVPC(ctx context.Context, name, cidr string) (string, error)
	GetVPCID(ctx context.Context, name string) (string, error)
	EnsureSubnet(ctx context.Context, vpcID, name, cidr, availabilityZone string) (string, error)
	EnsureInternetGateway(ctx context.Context, vpcID, name string) (string, error)
	EnsurePublicRouteTable(ctx context.Context, vpcID, igwID, name string, subnetIDs []string) (string, error)
	DeleteRouteTable(ctx context.Context, name string) error
	DeleteInternetGateway(ctx context.Context, vpcID, name string) error
	DeleteSubnet(ctx context.Context, name string) error
	DeleteVPC(ctx context.Context, name string) error
}

// SecurityGroupManager manages per-role traffic rules.
type SecurityGroupManager interface {
	EnsureSecurityGroup(ctx context.Context, vpcID, name, description string, rules RuleSet) (string, error)
	DeleteSecurityGroup(ctx context.Context, name string) error
}

// ImageResolver resolves a name pattern to a concrete machine image.
type ImageResolver interface {
	// ResolveImage returns the ID of the most recently published AMI
	// matching the pattern. Unpinned by design: a re-apply may pick a newer
	// image.
	ResolveImage(ctx context.Context, namePattern, owner string) (string, error)
}

// KeyPairManager registers SSH public keys with EC2.
type KeyPairManager interface {
	EnsureKeyPair(ctx context.Context, name string, publicKey []byte) (string, error)
	DeleteKeyPair(ctx context.Context, name string) error
}

// InstanceManager manages instance lifecycle.
type InstanceManager interface {
	// EnsureInstance returns the existing instance with the given name, or
	// launches a new one and waits until it is running with an address
	// assigned.
	EnsureInstance(ctx context.Context, opts InstanceCreateOpts) (*Instance, error)
	GetInstanceByName(ctx context.Context, name string) (*Instance, error)
	// TerminateInstance terminates the named instance and waits for the
	// terminated state. Missing instances are not an error.
	TerminateInstance(ctx context.Context, name string) error
}

// InfrastructureManager combines all manager interfaces.
type InfrastructureManager interface {
	NetworkManager
	SecurityGroupManager
	ImageResolver
	KeyPairManager
	InstanceManager
}
