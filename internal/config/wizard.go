package config

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// regionOptions are the regions offered by the init wizard. Any region can
// still be set by editing the generated file.
var regionOptions = []huh.Option[string]{
	huh.NewOption("us-east-1 (N. Virginia)", "us-east-1"),
	huh.NewOption("us-west-2 (Oregon)", "us-west-2"),
	huh.NewOption("eu-west-1 (Ireland)", "eu-west-1"),
	huh.NewOption("eu-central-1 (Frankfurt)", "eu-central-1"),
	huh.NewOption("ap-southeast-1 (Singapore)", "ap-southeast-1"),
}

var instanceTypeOptions = []huh.Option[string]{
	huh.NewOption("t3.micro - 2 vCPU, 1GB RAM", "t3.micro"),
	huh.NewOption("t3.small - 2 vCPU, 2GB RAM", "t3.small"),
	huh.NewOption("t3.medium - 2 vCPU, 4GB RAM", "t3.medium"),
	huh.NewOption("t3.large - 2 vCPU, 8GB RAM", "t3.large"),
}

// RunWizard interactively collects an environment configuration.
// The returned config has defaults applied and is validated.
func RunWizard() (*Config, error) {
	cfg := &Config{}
	countStr := strconv.Itoa(DefaultManagedCount)
	instanceType := DefaultInstanceType

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Environment name").
				Description("Prefixes every AWS resource this tool creates").
				Placeholder("demo").
				Value(&cfg.Environment).
				Validate(func(s string) error {
					if !environmentNameRE.MatchString(s) {
						return fmt.Errorf("lowercase alphanumeric with hyphens, max 32 chars")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("AWS region").
				Options(regionOptions...).
				Value(&cfg.Region),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Managed web nodes").
				Description("Number of web-server replicas behind the control node").
				Value(&countStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 || n > 16 {
						return fmt.Errorf("enter a number between 1 and 16")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Instance type").
				Description("Used for the control node and all managed nodes").
				Options(instanceTypeOptions...).
				Value(&instanceType),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard aborted: %w", err)
	}

	cfg.ManagedNodes.Count, _ = strconv.Atoi(countStr)
	cfg.ControlNode.InstanceType = instanceType
	cfg.ManagedNodes.InstanceType = instanceType

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
