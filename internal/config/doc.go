// Package config defines the webfleet environment configuration.
//
// An environment is described by a single YAML file (webfleet.yaml by
// default): network layout, node counts and sizes, SSH credentials, AMI
// selection, and the run-state backend. LoadFile applies defaults and
// validates before any provider call is made, so malformed input fails at
// plan time rather than mid-apply.
//
// Credential locations are always injected through configuration; nothing in
// the binary assumes a particular filesystem layout.
package config
