// Package destroy handles environment teardown and resource cleanup.
package destroy
