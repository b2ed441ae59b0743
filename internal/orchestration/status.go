// Package orchestration runs the one-shot configuration pass against the
// control node: it stages the inventory, playbooks, and key material over
// SSH, then executes the configuration-management agent. The run is gated
// by the inventory fingerprint, so an unchanged fleet performs zero remote
// commands.
package orchestration

// Status is the lifecycle state of a configuration run.
type Status string

const (
	// StatusPending means no run has started.
	StatusPending Status = "pending"
	// StatusConnecting means the control node connection is being verified.
	StatusConnecting Status = "connecting"
	// StatusStaging means run artifacts are being uploaded.
	StatusStaging Status = "staging"
	// StatusConfiguring means the agent configuration is being written.
	StatusConfiguring Status = "configuring"
	// StatusExecuting means playbooks are running.
	StatusExecuting Status = "executing"
	// StatusDone means the run finished and the fingerprint was recorded.
	StatusDone Status = "done"
	// StatusFailed means a fatal step aborted the run.
	StatusFailed Status = "failed"
)
