package provisioning

import (
	"fmt"
	"os"
	"strings"

	"github.com/webfleet/webfleet/internal/config"
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string
	Message  string
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidationPhase implements the Phase interface for pre-flight validation.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	ctx.Observer.Printf("[Validation] Running pre-flight validation...")

	if err := ctx.Config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	allErrors := validate(ctx)

	var errors []ValidationError
	for _, ve := range allErrors {
		if ve.IsError() {
			errors = append(errors, ve)
		} else {
			ctx.Observer.Printf("[Validation] WARNING: %s", ve.Message)
		}
	}

	if len(errors) > 0 {
		var errMsgs []string
		for _, e := range errors {
			errMsgs = append(errMsgs, e.Error())
		}
		return fmt.Errorf("pre-flight validation failed:\n  %s", strings.Join(errMsgs, "\n  "))
	}

	ctx.Observer.Printf("[Validation] Validation passed")
	return nil
}

// validate runs the pre-flight checks that need the environment, not just
// the config document.
func validate(ctx *Context) []ValidationError {
	var errs []ValidationError
	cfg := ctx.Config

	// Subnet computation must succeed for every configured zone index
	if _, err := cfg.SubnetCIDRs(); err != nil {
		errs = append(errs, ValidationError{
			Field:    "Network",
			Message:  fmt.Sprintf("cannot compute subnet ranges: %v", err),
			Severity: "error",
		})
	}

	// Key files must be readable when configured; otherwise a pair is
	// generated under the environment's key directory
	if cfg.SSH.PrivateKeyPath != "" {
		for field, path := range map[string]string{
			"SSH.PrivateKeyPath": cfg.SSH.PrivateKeyPath,
			"SSH.PublicKeyPath":  cfg.SSH.PublicKeyPath,
		} {
			expanded, err := config.ExpandPath(path)
			if err != nil {
				errs = append(errs, ValidationError{Field: field, Message: err.Error(), Severity: "error"})
				continue
			}
			if _, err := os.Stat(expanded); err != nil {
				errs = append(errs, ValidationError{
					Field:    field,
					Message:  fmt.Sprintf("key file not readable: %v", err),
					Severity: "error",
				})
			}
		}
	}

	if cfg.ManagedNodes.Count > 16 {
		errs = append(errs, ValidationError{
			Field:    "ManagedNodes.Count",
			Message:  fmt.Sprintf("%d managed nodes is unusually large for a single environment", cfg.ManagedNodes.Count),
			Severity: "warning",
		})
	}

	return errs
}
