// Package compute provisions the EC2 layer of an environment: the key
// pair, the resolved machine image, the single control node, and the
// managed web nodes.
package compute
