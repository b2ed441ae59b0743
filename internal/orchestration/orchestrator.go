package orchestration

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/webfleet/webfleet/internal/ansible"
	"github.com/webfleet/webfleet/internal/config"
	"github.com/webfleet/webfleet/internal/inventory"
	"github.com/webfleet/webfleet/internal/provisioning"
	"github.com/webfleet/webfleet/internal/statestore"
)

// Runner executes commands and uploads files on the control node.
// Implemented by internal/platform/ssh.Client.
type Runner interface {
	Execute(ctx context.Context, command string) (string, error)
	Upload(ctx context.Context, path string, content []byte, mode string) error
}

// Orchestrator drives the configuration run. Remote commands execute
// strictly sequentially over the single runner; no command begins before
// the previous one completes.
type Orchestrator struct {
	cfg      *config.Config
	store    statestore.Store
	runner   Runner
	observer provisioning.Logger

	privateKey []byte
	status     Status
}

// New creates an orchestrator. The private key is staged onto the control
// node so the agent can reach the managed hosts.
func New(cfg *config.Config, store statestore.Store, runner Runner, privateKey []byte, observer provisioning.Logger) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("state store cannot be nil")
	}
	if runner == nil {
		return nil, fmt.Errorf("runner cannot be nil")
	}
	if len(privateKey) == 0 {
		return nil, fmt.Errorf("private key cannot be empty")
	}
	if observer == nil {
		observer = provisioning.NewConsoleObserver()
	}

	return &Orchestrator{
		cfg:        cfg,
		store:      store,
		runner:     runner,
		privateKey: privateKey,
		observer:   observer,
		status:     StatusPending,
	}, nil
}

// Status returns the current lifecycle state of the run.
func (o *Orchestrator) Status() Status {
	return o.status
}

// workDir is the staging directory on the control node.
func (o *Orchestrator) workDir() string {
	return path.Join("/home", o.cfg.SSH.User, "webfleet")
}

func (o *Orchestrator) remotePath(name string) string {
	return path.Join(o.workDir(), name)
}

// Run performs the configuration pass for the given managed addresses.
// When the stored fingerprint matches the current address set the run is
// a no-op and no remote command is issued.
func (o *Orchestrator) Run(ctx context.Context, addrs []string) error {
	fingerprint := inventory.Fingerprint(addrs)

	record, err := o.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read state record: %w", err)
	}
	if record != nil && record.InventoryFingerprint == fingerprint {
		o.observer.Printf("[orchestration] fleet unchanged (fingerprint %.12s), nothing to do", fingerprint)
		o.status = StatusDone
		return nil
	}

	if err := o.connect(ctx); err != nil {
		o.status = StatusFailed
		return err
	}
	if err := o.stage(ctx, addrs); err != nil {
		o.status = StatusFailed
		return err
	}
	if err := o.configure(ctx); err != nil {
		o.status = StatusFailed
		return err
	}
	if err := o.execute(ctx); err != nil {
		o.status = StatusFailed
		return err
	}

	// Only a fully successful run moves the fingerprint forward; a failed
	// run leaves the old record so the next attempt repeats everything
	if err := o.store.Put(ctx, &statestore.Record{
		Environment:          o.cfg.Environment,
		InventoryFingerprint: fingerprint,
		Hosts:                addrs,
		ConfiguredAt:         time.Now().UTC(),
	}); err != nil {
		o.status = StatusFailed
		return fmt.Errorf("failed to record fingerprint: %w", err)
	}

	o.status = StatusDone
	o.observer.Printf("[orchestration] configuration complete, fingerprint %.12s recorded", fingerprint)
	return nil
}

// connect verifies the control node is reachable before anything is staged.
func (o *Orchestrator) connect(ctx context.Context) error {
	o.status = StatusConnecting
	o.observer.Printf("[orchestration] verifying control node connection...")

	if _, err := o.runner.Execute(ctx, "true"); err != nil {
		return fmt.Errorf("control node unreachable: %w", err)
	}
	return nil
}

// stage uploads the inventory, both playbooks, and the private key.
func (o *Orchestrator) stage(ctx context.Context, addrs []string) error {
	o.status = StatusStaging
	workDir := o.workDir()
	o.observer.Printf("[orchestration] staging run artifacts to %s...", workDir)

	// A leftover directory from an earlier run is fine
	if _, err := o.runner.Execute(ctx, fmt.Sprintf("mkdir -p %s", workDir)); err != nil {
		o.observer.Printf("[orchestration] WARNING: could not prepare %s: %v", workDir, err)
	}

	if err := o.runner.Upload(ctx, o.remotePath("inventory"), []byte(inventory.Render(addrs)), "0644"); err != nil {
		return fmt.Errorf("failed to stage inventory: %w", err)
	}

	hostKeys, err := ansible.HostKeyPlaybook().Marshal()
	if err != nil {
		return err
	}
	if err := o.runner.Upload(ctx, o.remotePath("hostkeys.yml"), hostKeys, "0644"); err != nil {
		return fmt.Errorf("failed to stage host-key playbook: %w", err)
	}

	webServer, err := ansible.WebServerPlaybook(o.cfg.ManagedNodes.HTTPPort).Marshal()
	if err != nil {
		return err
	}
	if err := o.runner.Upload(ctx, o.remotePath("webserver.yml"), webServer, "0644"); err != nil {
		return fmt.Errorf("failed to stage web-server playbook: %w", err)
	}

	if err := o.runner.Upload(ctx, o.remotePath("fleet.pem"), o.privateKey, "0600"); err != nil {
		return fmt.Errorf("failed to stage private key: %w", err)
	}

	return nil
}

// configure writes the agent configuration next to the staged inventory.
func (o *Orchestrator) configure(ctx context.Context) error {
	o.status = StatusConfiguring
	o.observer.Printf("[orchestration] writing agent configuration...")

	cfg := ansible.RenderConfig(
		o.remotePath("inventory"),
		o.remotePath("fleet.pem"),
		o.cfg.SSH.User,
		o.cfg.SSH.Port,
	)
	if err := o.runner.Upload(ctx, o.remotePath("ansible.cfg"), []byte(cfg), "0644"); err != nil {
		return fmt.Errorf("failed to write agent configuration: %w", err)
	}
	return nil
}

// execute runs the playbooks in order. The host-key pass and the install
// pass are fatal on non-zero exit; the reachability check in between is
// best-effort only.
func (o *Orchestrator) execute(ctx context.Context) error {
	o.status = StatusExecuting
	workDir := o.workDir()

	o.observer.Printf("[orchestration] registering host keys...")
	hostKeysCmd := fmt.Sprintf("cd %s && ansible-playbook -i inventory hostkeys.yml", workDir)
	if out, err := o.runner.Execute(ctx, hostKeysCmd); err != nil {
		return fmt.Errorf("host-key registration failed: %w\n%s", err, out)
	}

	o.observer.Printf("[orchestration] checking host reachability...")
	pingCmd := fmt.Sprintf("cd %s && ansible all -i inventory -m ping", workDir)
	if out, err := o.runner.Execute(ctx, pingCmd); err != nil {
		o.observer.Printf("[orchestration] WARNING: reachability check failed: %v\n%s", err, out)
	}

	o.observer.Printf("[orchestration] installing web servers...")
	installCmd := fmt.Sprintf("cd %s && ansible-playbook -i inventory webserver.yml", workDir)
	if out, err := o.runner.Execute(ctx, installCmd); err != nil {
		return fmt.Errorf("web-server installation failed: %w\n%s", err, out)
	}

	return nil
}
