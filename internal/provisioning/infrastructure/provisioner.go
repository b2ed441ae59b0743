package infrastructure

import (
	"github.com/webfleet/webfleet/internal/provisioning"
)

// Provisioner handles infrastructure provisioning (network and security groups).
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "infrastructure"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Network
	if err := p.ProvisionNetwork(ctx); err != nil {
		return err
	}

	// 2. Security groups
	if err := p.ProvisionSecurityGroups(ctx); err != nil {
		return err
	}

	return nil
}
