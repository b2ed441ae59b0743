// Package ansible models playbooks as Go values and renders them to YAML.
// The orchestrator uploads the rendered documents to the control node and
// runs them there with ansible-playbook, so everything the playbooks need
// must be expressed in the document itself.
package ansible

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Task is a single step in a play. The module invocation lives in Action
// and is inlined into the task mapping, so a Task with Action
// {"yum": {"name": "httpd"}} renders as a regular Ansible task.
type Task struct {
	Name         string         `yaml:"name"`
	Action       map[string]any `yaml:",inline"`
	Loop         string         `yaml:"loop,omitempty"`
	Register     string         `yaml:"register,omitempty"`
	When         string         `yaml:"when,omitempty"`
	IgnoreErrors bool           `yaml:"ignore_errors,omitempty"`
}

// Play targets a host pattern with an ordered list of tasks.
type Play struct {
	Name        string         `yaml:"name"`
	Hosts       string         `yaml:"hosts"`
	Become      bool           `yaml:"become,omitempty"`
	GatherFacts *bool          `yaml:"gather_facts,omitempty"`
	Vars        map[string]any `yaml:"vars,omitempty"`
	Tasks       []Task         `yaml:"tasks"`
}

// Playbook is an ordered list of plays.
type Playbook []Play

// Marshal renders the playbook as a YAML document.
func (p Playbook) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal playbook: %w", err)
	}
	return data, nil
}

func boolPtr(b bool) *bool { return &b }
