package provisioning

import (
	"context"

	"github.com/webfleet/webfleet/internal/config"
	"github.com/webfleet/webfleet/internal/platform/aws"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Infra    aws.InfrastructureManager
	Observer Observer
}

// NewContext creates a new provisioning context with a console observer.
func NewContext(ctx context.Context, cfg *config.Config, infra aws.InfrastructureManager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Infra:    infra,
		Observer: NewConsoleObserver(),
	}
}
