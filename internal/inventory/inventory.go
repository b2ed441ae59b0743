// Package inventory renders the managed-host inventory consumed by the
// configuration playbooks and computes the change fingerprint that gates
// re-configuration runs.
package inventory

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Render produces the inventory document for the given host addresses.
// Hosts are joined with a single newline; the document has no trailing
// newline, so an inventory of hosts A, B, C is exactly "A\nB\nC".
func Render(hosts []string) string {
	return strings.Join(hosts, "\n")
}

// Write renders the inventory and writes it to path, creating parent
// directories as needed.
func Write(path string, hosts []string) error {
	if path == "" {
		return fmt.Errorf("inventory path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create inventory directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(Render(hosts)), 0o644); err != nil { //nolint:gosec // Inventory holds public addresses only
		return fmt.Errorf("failed to write inventory: %w", err)
	}

	return nil
}

// Fingerprint returns the hex SHA-256 digest of the rendered inventory.
// Two host lists produce the same fingerprint exactly when they render
// to the same document, so host order matters.
func Fingerprint(hosts []string) string {
	sum := sha256.Sum256([]byte(Render(hosts)))
	return hex.EncodeToString(sum[:])
}
