// Package aws wraps the EC2 API behind small, role-focused manager
// interfaces with get-or-create Ensure semantics.
//
// Every resource webfleet creates is tagged with a Name derived from the
// environment, and Ensure operations key on that tag: an existing resource
// with the expected name is reused, a missing one is created. This makes
// apply idempotent without a local resource-ID store.
//
// The package is organized into resource-specific files:
//
//   - client.go: manager interfaces and option types
//   - real_client.go: EC2-backed implementation setup
//   - vpc.go, subnet.go, gateway.go: network resources
//   - security_group.go: ingress rule application
//   - image.go: latest-match AMI resolution
//   - keypair.go: SSH key pair registration
//   - instance.go: instance lifecycle and state polling
//   - errors.go: API error classification
//   - mock_client.go: func-field test double
package aws
