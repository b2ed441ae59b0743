package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hosts []string
		want  string
	}{
		{
			name:  "three hosts joined with newlines",
			hosts: []string{"198.51.100.10", "198.51.100.11", "198.51.100.12"},
			want:  "198.51.100.10\n198.51.100.11\n198.51.100.12",
		},
		{
			name:  "single host has no newline",
			hosts: []string{"198.51.100.10"},
			want:  "198.51.100.10",
		},
		{
			name:  "empty list renders empty document",
			hosts: nil,
			want:  "",
		},
		{
			name:  "dns names work the same as addresses",
			hosts: []string{"ec2-1.compute.amazonaws.com", "ec2-2.compute.amazonaws.com"},
			want:  "ec2-1.compute.amazonaws.com\nec2-2.compute.amazonaws.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Render(tt.hosts))
		})
	}
}

func TestRender_NoTrailingNewline(t *testing.T) {
	t.Parallel()
	doc := Render([]string{"a", "b", "c"})
	assert.Equal(t, "a\nb\nc", doc)
	assert.NotEqual(t, byte('\n'), doc[len(doc)-1])
}

func TestWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "env", "inventory")

	err := Write(path, []string{"198.51.100.10", "198.51.100.11"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.10\n198.51.100.11", string(data))
}

func TestWrite_EmptyPath(t *testing.T) {
	t.Parallel()
	err := Write("", []string{"198.51.100.10"})
	require.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := Fingerprint([]string{"198.51.100.10", "198.51.100.11"})
	same := Fingerprint([]string{"198.51.100.10", "198.51.100.11"})
	reordered := Fingerprint([]string{"198.51.100.11", "198.51.100.10"})
	changed := Fingerprint([]string{"198.51.100.10", "198.51.100.12"})

	assert.Equal(t, a, same)
	assert.NotEqual(t, a, reordered, "host order must change the fingerprint")
	assert.NotEqual(t, a, changed)
	assert.Len(t, a, 64)
}
