package ui

import (
	"fmt"
	"strings"
)

// ResourceStatus is one desired resource and whether it currently exists.
type ResourceStatus struct {
	Type   string
	Name   string
	Exists bool
	ID     string
}

// PlanReport summarizes the gap between desired and observed state.
type PlanReport struct {
	Environment string
	Resources   []ResourceStatus

	// Orchestration gate
	StoredFingerprint  string
	CurrentFingerprint string
	// AddressesKnown is false when managed nodes are missing, so the
	// current fingerprint cannot be computed yet.
	AddressesKnown bool
}

// FingerprintStale reports whether the orchestration step would run.
func (r *PlanReport) FingerprintStale() bool {
	if !r.AddressesKnown {
		return true
	}
	return r.StoredFingerprint != r.CurrentFingerprint
}

// Missing returns how many desired resources do not exist yet.
func (r *PlanReport) Missing() int {
	missing := 0
	for _, res := range r.Resources {
		if !res.Exists {
			missing++
		}
	}
	return missing
}

// Render formats the report for the terminal.
func (r *PlanReport) Render() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Plan for environment %q", r.Environment)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Resources"))
	b.WriteString("\n")
	for _, res := range r.Resources {
		if res.Exists {
			b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
				okStyle.Render(checkMark), res.Type, res.Name, dimStyle.Render(res.ID)))
		} else {
			b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
				missingStyle.Render(crossMark), res.Type, res.Name, dimStyle.Render("to be created")))
		}
	}

	b.WriteString(sectionStyle.Render("Orchestration"))
	b.WriteString("\n")
	switch {
	case !r.AddressesKnown:
		b.WriteString(fmt.Sprintf("  %s %s\n",
			staleStyle.Render(staleMark), "configuration pending: managed addresses not yet assigned"))
	case r.FingerprintStale():
		b.WriteString(fmt.Sprintf("  %s %s\n",
			staleStyle.Render(staleMark), "configuration stale: fleet changed since last run"))
	default:
		b.WriteString(fmt.Sprintf("  %s %s\n",
			okStyle.Render(checkMark), "configuration up to date"))
	}

	if missing := r.Missing(); missing > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("\n%d of %d resources to create; run apply to converge.\n",
			missing, len(r.Resources))))
	} else {
		b.WriteString(dimStyle.Render("\nAll resources present.\n"))
	}

	return b.String()
}

// ApplySummary renders the post-apply overview with the node addresses.
func ApplySummary(environment, controlAddr string, managedAddrs []string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Environment %q is ready", environment)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Control node"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", okStyle.Render(checkMark), controlAddr))

	b.WriteString(sectionStyle.Render("Web nodes"))
	b.WriteString("\n")
	for _, addr := range managedAddrs {
		b.WriteString(fmt.Sprintf("  %s http://%s/\n", okStyle.Render(checkMark), addr))
	}

	return b.String()
}
