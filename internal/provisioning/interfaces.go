// Package provisioning provides shared types and interfaces for environment provisioning.
//
// The provisioning domain is organized into focused subpackages:
//   - infrastructure/: VPC, subnets, gateway, routing, security groups
//   - compute/: key pair, image resolution, control and managed nodes
//   - destroy/: teardown in reverse dependency order
//
// This root package contains the shared Phase interface, the progressive
// State, and the Observer used across subpackages.
package provisioning

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}
