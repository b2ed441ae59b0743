package orchestration

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfleet/webfleet/internal/config"
	"github.com/webfleet/webfleet/internal/inventory"
	"github.com/webfleet/webfleet/internal/statestore"
)

// mockRunner records remote activity and fails on demand.
type mockRunner struct {
	commands []string
	uploads  map[string][]byte
	modes    map[string]string

	executeErr func(command string) error
	uploadErr  func(path string) error
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		uploads: make(map[string][]byte),
		modes:   make(map[string]string),
	}
}

func (m *mockRunner) Execute(_ context.Context, command string) (string, error) {
	m.commands = append(m.commands, command)
	if m.executeErr != nil {
		if err := m.executeErr(command); err != nil {
			return "simulated failure output", err
		}
	}
	return "", nil
}

func (m *mockRunner) Upload(_ context.Context, path string, content []byte, mode string) error {
	if m.uploadErr != nil {
		if err := m.uploadErr(path); err != nil {
			return err
		}
	}
	m.uploads[path] = content
	m.modes[path] = mode
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{Environment: "staging"}
	cfg.ApplyDefaults()
	return cfg
}

func newOrchestrator(t *testing.T, store statestore.Store, runner Runner) *Orchestrator {
	t.Helper()
	o, err := New(testConfig(), store, runner, []byte("key material"), nil)
	require.NoError(t, err)
	return o
}

func fileStore(t *testing.T) *statestore.FileStore {
	t.Helper()
	store, err := statestore.NewFileStore(t.TempDir() + "/state.json")
	require.NoError(t, err)
	return store
}

var testAddrs = []string{"198.51.100.10", "198.51.100.11", "198.51.100.12"}

func TestRun_FullSequence(t *testing.T) {
	runner := newMockRunner()
	store := fileStore(t)
	o := newOrchestrator(t, store, runner)

	require.NoError(t, o.Run(context.Background(), testAddrs))
	assert.Equal(t, StatusDone, o.Status())

	// Staged artifacts
	workDir := "/home/ec2-user/webfleet"
	assert.Equal(t, "198.51.100.10\n198.51.100.11\n198.51.100.12",
		string(runner.uploads[workDir+"/inventory"]))
	assert.Contains(t, string(runner.uploads[workDir+"/hostkeys.yml"]), "ssh-keyscan")
	assert.Contains(t, string(runner.uploads[workDir+"/webserver.yml"]), "httpd")
	assert.Equal(t, "key material", string(runner.uploads[workDir+"/fleet.pem"]))
	assert.Equal(t, "0600", runner.modes[workDir+"/fleet.pem"], "private key must not be world-readable")
	assert.Contains(t, string(runner.uploads[workDir+"/ansible.cfg"]), "host_key_checking = False")

	// Commands run strictly in order: connect, mkdir, host keys, ping, install
	require.Len(t, runner.commands, 5)
	assert.Equal(t, "true", runner.commands[0])
	assert.Contains(t, runner.commands[1], "mkdir -p")
	assert.Contains(t, runner.commands[2], "ansible-playbook -i inventory hostkeys.yml")
	assert.Contains(t, runner.commands[3], "ansible all -i inventory -m ping")
	assert.Contains(t, runner.commands[4], "ansible-playbook -i inventory webserver.yml")

	// Fingerprint recorded on success
	record, err := store.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, inventory.Fingerprint(testAddrs), record.InventoryFingerprint)
	assert.Equal(t, testAddrs, record.Hosts)
}

func TestRun_UnchangedFleetIsNoop(t *testing.T) {
	runner := newMockRunner()
	store := fileStore(t)

	o := newOrchestrator(t, store, runner)
	require.NoError(t, o.Run(context.Background(), testAddrs))
	commandsAfterFirst := len(runner.commands)

	// Second run with the identical address set
	o2 := newOrchestrator(t, store, runner)
	require.NoError(t, o2.Run(context.Background(), testAddrs))

	assert.Equal(t, StatusDone, o2.Status())
	assert.Len(t, runner.commands, commandsAfterFirst, "unchanged fleet must issue zero remote commands")
}

func TestRun_ChangedAddressRerunsEverything(t *testing.T) {
	runner := newMockRunner()
	store := fileStore(t)

	o := newOrchestrator(t, store, runner)
	require.NoError(t, o.Run(context.Background(), testAddrs))
	commandsAfterFirst := len(runner.commands)

	// One node was replaced; the whole sequence repeats for the full set
	replaced := []string{"198.51.100.10", "198.51.100.99", "198.51.100.12"}
	o2 := newOrchestrator(t, store, runner)
	require.NoError(t, o2.Run(context.Background(), replaced))

	assert.Equal(t, commandsAfterFirst*2, len(runner.commands))
	assert.Equal(t, "198.51.100.10\n198.51.100.99\n198.51.100.12",
		string(runner.uploads["/home/ec2-user/webfleet/inventory"]))
}

func TestRun_HostKeyFailureBlocksInstall(t *testing.T) {
	runner := newMockRunner()
	runner.executeErr = func(command string) error {
		if strings.Contains(command, "hostkeys.yml") {
			return fmt.Errorf("exit status 2")
		}
		return nil
	}

	store := fileStore(t)
	o := newOrchestrator(t, store, runner)

	err := o.Run(context.Background(), testAddrs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host-key registration failed")
	assert.Equal(t, StatusFailed, o.Status())

	for _, cmd := range runner.commands {
		assert.NotContains(t, cmd, "webserver.yml", "install must not run after a host-key failure")
	}

	// Failed runs leave no fingerprint, so the next run repeats in full
	record, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestRun_PingFailureIsTolerated(t *testing.T) {
	runner := newMockRunner()
	runner.executeErr = func(command string) error {
		if strings.Contains(command, "-m ping") {
			return fmt.Errorf("exit status 4")
		}
		return nil
	}

	store := fileStore(t)
	o := newOrchestrator(t, store, runner)

	require.NoError(t, o.Run(context.Background(), testAddrs))
	assert.Equal(t, StatusDone, o.Status())

	record, err := store.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)
}

func TestRun_MkdirFailureIsTolerated(t *testing.T) {
	runner := newMockRunner()
	runner.executeErr = func(command string) error {
		if strings.Contains(command, "mkdir") {
			return fmt.Errorf("permission denied")
		}
		return nil
	}

	o := newOrchestrator(t, fileStore(t), runner)
	require.NoError(t, o.Run(context.Background(), testAddrs))
	assert.Equal(t, StatusDone, o.Status())
}

func TestRun_ConnectFailure(t *testing.T) {
	runner := newMockRunner()
	runner.executeErr = func(command string) error {
		if command == "true" {
			return fmt.Errorf("connection refused")
		}
		return nil
	}

	o := newOrchestrator(t, fileStore(t), runner)
	err := o.Run(context.Background(), testAddrs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "control node unreachable")
	assert.Equal(t, StatusFailed, o.Status())
	assert.Empty(t, runner.uploads, "nothing staged when the connection fails")
}

func TestRun_UploadFailure(t *testing.T) {
	runner := newMockRunner()
	runner.uploadErr = func(path string) error {
		if strings.HasSuffix(path, "fleet.pem") {
			return fmt.Errorf("disk full")
		}
		return nil
	}

	o := newOrchestrator(t, fileStore(t), runner)
	err := o.Run(context.Background(), testAddrs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stage private key")
	assert.Equal(t, StatusFailed, o.Status())
}

func TestNew_Validation(t *testing.T) {
	store := fileStore(t)
	runner := newMockRunner()

	_, err := New(nil, store, runner, []byte("key"), nil)
	assert.Error(t, err)

	_, err = New(testConfig(), nil, runner, []byte("key"), nil)
	assert.Error(t, err)

	_, err = New(testConfig(), store, nil, []byte("key"), nil)
	assert.Error(t, err)

	_, err = New(testConfig(), store, runner, nil, nil)
	assert.Error(t, err)
}

func TestOrchestrator_InitialStatus(t *testing.T) {
	o := newOrchestrator(t, fileStore(t), newMockRunner())
	assert.Equal(t, StatusPending, o.Status())
}
