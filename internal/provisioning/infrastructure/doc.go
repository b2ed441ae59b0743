// Package infrastructure provisions the network layer of an environment:
// the VPC, one public subnet per availability zone, the internet gateway,
// the public route table, and the two security groups.
package infrastructure
