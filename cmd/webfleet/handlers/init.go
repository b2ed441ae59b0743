package handlers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init interactively collects an environment configuration and writes it
// to outputPath. Existing files are only overwritten with force.
func Init(outputPath string, force bool) error {
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("%s already exists; use --force to overwrite", outputPath)
		}
	}

	cfg, err := runWizard()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := writeFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Printf("Configuration written to %s\n", outputPath)
	fmt.Println("Review it, then run 'webfleet apply' to stand up the environment.")
	return nil
}
