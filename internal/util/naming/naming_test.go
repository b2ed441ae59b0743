package naming

import "testing"

func TestNames(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"vpc", VPC("demo"), "demo"},
		{"subnet", Subnet("demo", 1), "demo-public-1"},
		{"igw", InternetGateway("demo"), "demo-igw"},
		{"route table", RouteTable("demo"), "demo-public"},
		{"control sg", ControlSecurityGroup("demo"), "demo-control"},
		{"managed sg", ManagedSecurityGroup("demo"), "demo-web"},
		{"control node", ControlNode("demo"), "demo-control"},
		{"managed node", ManagedNode("demo", 2), "demo-web-2"},
		{"key pair", KeyPair("demo"), "demo-key"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestManagedNodeSuffixesAreSequential(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		n := ManagedNode("prod", i)
		if seen[n] {
			t.Fatalf("duplicate name %q", n)
		}
		seen[n] = true
	}
}
