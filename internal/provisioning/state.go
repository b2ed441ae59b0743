package provisioning

import "github.com/webfleet/webfleet/internal/platform/aws"

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Infrastructure results (populated by infrastructure provisioner)
	VPCID       string
	SubnetIDs   []string // ordered by subnet index
	ControlSGID string
	ManagedSGID string

	// Compute results (populated by compute provisioner)
	KeyPairName  string
	ImageID      string
	ControlNode  *aws.Instance
	ManagedNodes []*aws.Instance // ordered by node index
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// ManagedAddresses returns the public addresses of the managed nodes in
// node-index order. The orchestration fingerprint is computed over this
// exact ordering.
func (s *State) ManagedAddresses() []string {
	addrs := make([]string, 0, len(s.ManagedNodes))
	for _, node := range s.ManagedNodes {
		addrs = append(addrs, node.PublicIP)
	}
	return addrs
}
