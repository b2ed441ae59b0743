package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfleet/webfleet/internal/config"
	"github.com/webfleet/webfleet/internal/orchestration"
	"github.com/webfleet/webfleet/internal/platform/aws"
	"github.com/webfleet/webfleet/internal/statestore"
)

// saveAndRestoreFactories saves the current factory functions and registers
// a cleanup to restore them.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origNewInfraClient := newInfraClient
	origNewStateStore := newStateStore
	origNewRunner := newRunner
	origLoadConfigFile := loadConfigFile
	origFindConfigFile := findConfigFile
	origRunWizard := runWizard
	origWriteFile := writeFile

	t.Cleanup(func() {
		newInfraClient = origNewInfraClient
		newStateStore = origNewStateStore
		newRunner = origNewRunner
		loadConfigFile = origLoadConfigFile
		findConfigFile = origFindConfigFile
		runWizard = origRunWizard
		writeFile = origWriteFile
	})
}

// fakeRunner is a no-op orchestration runner.
type fakeRunner struct {
	commands []string
}

func (f *fakeRunner) Execute(_ context.Context, command string) (string, error) {
	f.commands = append(f.commands, command)
	return "", nil
}

func (f *fakeRunner) Upload(_ context.Context, _ string, _ []byte, _ string) error {
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	priv := filepath.Join(dir, "id_rsa")
	pub := filepath.Join(dir, "id_rsa.pub")
	require.NoError(t, os.WriteFile(priv, []byte("private material"), 0o600))
	require.NoError(t, os.WriteFile(pub, []byte("ssh-rsa AAAA"), 0o644))

	cfg := &config.Config{Environment: "staging"}
	cfg.SSH.PrivateKeyPath = priv
	cfg.SSH.PublicKeyPath = pub
	cfg.State.Path = filepath.Join(dir, "state.json")
	cfg.ManagedNodes.Count = 2
	cfg.ApplyDefaults()
	return cfg
}

func stubFactories(t *testing.T, cfg *config.Config, mock *aws.MockClient, runner *fakeRunner) {
	t.Helper()
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) { return cfg, nil }
	newInfraClient = func(_ context.Context, _ string) (aws.InfrastructureManager, error) { return mock, nil }
	newStateStore = func(_ context.Context, c *config.Config) (statestore.Store, error) {
		return statestore.NewFileStore(c.State.Path)
	}
	newRunner = func(_ *config.Config, _ string, _ []byte) (orchestration.Runner, error) {
		return runner, nil
	}
}

func TestLoadConfig_EmptyPath_NoDefaultFile(t *testing.T) {
	saveAndRestoreFactories(t)

	findConfigFile = func() (string, error) {
		return "", errors.New("webfleet.yaml not found in current directory")
	}

	_, err := loadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webfleet init")
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	saveAndRestoreFactories(t)

	var loaded string
	loadConfigFile = func(path string) (*config.Config, error) {
		loaded = path
		return &config.Config{Environment: "staging"}, nil
	}

	cfg, err := loadConfig("custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, "custom.yaml", loaded)
	assert.Equal(t, "staging", cfg.Environment)
}

func TestApply_FullRun(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := testConfig(t)
	runner := &fakeRunner{}

	var instancesCreated []string
	mock := &aws.MockClient{
		EnsureInstanceFunc: func(_ context.Context, opts aws.InstanceCreateOpts) (*aws.Instance, error) {
			instancesCreated = append(instancesCreated, opts.Name)
			return &aws.Instance{
				ID:       "i-" + opts.Name,
				Name:     opts.Name,
				State:    "running",
				PublicIP: "198.51.100.10",
			}, nil
		},
	}

	stubFactories(t, cfg, mock, runner)

	require.NoError(t, Apply(context.Background(), "webfleet.yaml"))

	// Control node plus both managed nodes
	assert.Equal(t, []string{"staging-control", "staging-web-0", "staging-web-1"}, instancesCreated)

	// Inventory written before orchestration
	data, err := os.ReadFile(cfg.InventoryPath())
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.10\n198.51.100.10", string(data))

	// Orchestration ran the playbooks
	joined := ""
	for _, cmd := range runner.commands {
		joined += cmd + "\n"
	}
	assert.Contains(t, joined, "hostkeys.yml")
	assert.Contains(t, joined, "webserver.yml")

	// Fingerprint recorded
	store, err := statestore.NewFileStore(cfg.State.Path)
	require.NoError(t, err)
	record, err := store.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "staging", record.Environment)
}

func TestApply_InfraFailure(t *testing.T) {
	cfg := testConfig(t)
	mock := &aws.MockClient{
		EnsureVPCFunc: func(_ context.Context, _, _ string) (string, error) {
			return "", errors.New("throttled")
		},
	}
	stubFactories(t, cfg, mock, &fakeRunner{})

	err := Apply(context.Background(), "webfleet.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "infrastructure phase failed")
}

func TestDestroy_DropsStateRecord(t *testing.T) {
	cfg := testConfig(t)

	store, err := statestore.NewFileStore(cfg.State.Path)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), &statestore.Record{
		Environment:          "staging",
		InventoryFingerprint: "stale",
	}))

	var terminated []string
	mock := &aws.MockClient{
		TerminateInstanceFunc: func(_ context.Context, name string) error {
			terminated = append(terminated, name)
			return nil
		},
	}
	stubFactories(t, cfg, mock, &fakeRunner{})

	require.NoError(t, Destroy(context.Background(), "webfleet.yaml"))

	assert.Equal(t, []string{"staging-control", "staging-web-0", "staging-web-1"}, terminated)

	record, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record, "destroy must drop the state record")
}

func TestPlan_DoesNotMutate(t *testing.T) {
	cfg := testConfig(t)

	mutations := 0
	mock := &aws.MockClient{
		GetVPCIDFunc: func(_ context.Context, _ string) (string, error) {
			return "vpc-123", nil
		},
		GetInstanceByNameFunc: func(_ context.Context, name string) (*aws.Instance, error) {
			return &aws.Instance{ID: "i-" + name, Name: name, State: "running", PublicIP: "198.51.100.10"}, nil
		},
		EnsureVPCFunc: func(_ context.Context, _, _ string) (string, error) {
			mutations++
			return "vpc-123", nil
		},
		EnsureInstanceFunc: func(_ context.Context, opts aws.InstanceCreateOpts) (*aws.Instance, error) {
			mutations++
			return nil, nil
		},
	}
	stubFactories(t, cfg, mock, &fakeRunner{})

	require.NoError(t, Plan(context.Background(), "webfleet.yaml"))
	assert.Zero(t, mutations, "plan must be read-only")
}

func TestInit_WritesConfig(t *testing.T) {
	saveAndRestoreFactories(t)

	runWizard = func() (*config.Config, error) {
		cfg := &config.Config{Environment: "demo"}
		cfg.ApplyDefaults()
		return cfg, nil
	}

	var writtenPath string
	var written []byte
	writeFile = func(path string, data []byte, _ os.FileMode) error {
		writtenPath = path
		written = data
		return nil
	}

	outputPath := filepath.Join(t.TempDir(), "webfleet.yaml")
	require.NoError(t, Init(outputPath, false))

	assert.Equal(t, outputPath, writtenPath)
	assert.Contains(t, string(written), "environment: demo")
}

func TestInit_RefusesOverwrite(t *testing.T) {
	saveAndRestoreFactories(t)

	path := filepath.Join(t.TempDir(), "webfleet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: old"), 0o644))

	err := Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_ForceOverwrites(t *testing.T) {
	saveAndRestoreFactories(t)

	runWizard = func() (*config.Config, error) {
		cfg := &config.Config{Environment: "demo"}
		cfg.ApplyDefaults()
		return cfg, nil
	}

	path := filepath.Join(t.TempDir(), "webfleet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: old"), 0o644))

	require.NoError(t, Init(path, true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "environment: demo")
}
