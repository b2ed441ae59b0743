package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_HasAllSubcommands(t *testing.T) {
	root := Root()

	want := []string{"init", "plan", "apply", "destroy", "version", "completion"}
	got := make(map[string]bool)
	for _, cmd := range root.Commands() {
		got[cmd.Name()] = true
	}

	for _, name := range want {
		assert.True(t, got[name], "missing subcommand %q", name)
	}
}

func TestApply_ConfigFlag(t *testing.T) {
	cmd := Apply()

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
	assert.Empty(t, flag.DefValue)
}

func TestDestroy_ConfigFlagRequired(t *testing.T) {
	cmd := Destroy()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}

func TestInit_Flags(t *testing.T) {
	cmd := Init()

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "webfleet.yaml", output.DefValue)

	force := cmd.Flags().Lookup("force")
	require.NotNil(t, force)
	assert.Equal(t, "false", force.DefValue)
}

func TestVersion_Output(t *testing.T) {
	SetVersionInfo("1.2.3", "abcdef0", "2026-08-30")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	cmd := Version()
	assert.NotPanics(t, func() {
		cmd.Run(cmd, nil)
	})
	assert.Equal(t, "1.2.3", version)
}

func TestCompletion_RejectsUnknownShell(t *testing.T) {
	cmd := Completion()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"tcsh"})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestCompletion_GeneratesBash(t *testing.T) {
	root := Root()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "bash"})

	assert.NoError(t, root.Execute())
}
