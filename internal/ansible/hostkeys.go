package ansible

// HostKeyPlaybook builds the playbook that registers the SSH host keys of
// every managed address in the control node's known_hosts. It runs entirely
// on the control node itself, so the managed hosts do not need to be
// reachable over Ansible yet.
func HostKeyPlaybook() Playbook {
	return Playbook{
		{
			Name:        "Register managed host keys",
			Hosts:       "localhost",
			GatherFacts: boolPtr(false),
			Tasks: []Task{
				{
					Name: "Ensure .ssh directory exists",
					Action: map[string]any{
						"file": map[string]any{
							"path":  "~/.ssh",
							"state": "directory",
							"mode":  "0700",
						},
					},
				},
				{
					Name: "Scan and record host keys",
					Action: map[string]any{
						"shell": "ssh-keyscan -H {{ item }} >> ~/.ssh/known_hosts",
					},
					Loop: "{{ groups['all'] }}",
				},
			},
		},
	}
}
