// Package naming defines the resource naming scheme for an environment.
//
// Every AWS resource webfleet creates carries a Name tag derived from the
// environment name, so resources can be located (and destroyed) without
// persisting their IDs.
package naming

import "fmt"

func VPC(env string) string {
	return env
}

func Subnet(env string, index int) string {
	return fmt.Sprintf("%s-public-%d", env, index)
}

func InternetGateway(env string) string {
	return fmt.Sprintf("%s-igw", env)
}

func RouteTable(env string) string {
	return fmt.Sprintf("%s-public", env)
}

func ControlSecurityGroup(env string) string {
	return fmt.Sprintf("%s-control", env)
}

func ManagedSecurityGroup(env string) string {
	return fmt.Sprintf("%s-web", env)
}

func ControlNode(env string) string {
	return fmt.Sprintf("%s-control", env)
}

func ManagedNode(env string, index int) string {
	return fmt.Sprintf("%s-web-%d", env, index)
}

func KeyPair(env string) string {
	return fmt.Sprintf("%s-key", env)
}
