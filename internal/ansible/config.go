package ansible

import "fmt"

// RenderConfig produces the ansible.cfg written next to the staged
// inventory on the control node. Host-key checking is disabled because
// managed instances are ephemeral and their keys are registered by the
// host-key playbook on first contact.
func RenderConfig(inventoryPath, privateKeyPath, user string, port int) string {
	return fmt.Sprintf(`[defaults]
inventory = %s
remote_user = %s
private_key_file = %s
host_key_checking = False

[ssh_connection]
ssh_args = -o ControlMaster=auto -o ControlPersist=60s -p %d
`, inventoryPath, user, privateKeyPath, port)
}
