package provisioning

import (
	"fmt"
	"time"
)

// RunPhases runs the given phases in order against the shared context. The
// first failure stops the pipeline, since later phases read the state earlier
// ones recorded.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Running %d phases for environment %s", len(phases), ctx.Config.Environment)

	for i, phase := range phases {
		phaseStart := time.Now()
		ctx.Observer.Event(Event{
			Type:    EventPhaseStarted,
			Phase:   phase.Name(),
			Message: fmt.Sprintf("phase %d of %d", i+1, len(phases)),
		})

		if err := phase.Provision(ctx); err != nil {
			ctx.Observer.Event(Event{
				Type:    EventPhaseFailed,
				Phase:   phase.Name(),
				Message: err.Error(),
			})
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Event(Event{
			Type:    EventPhaseCompleted,
			Phase:   phase.Name(),
			Message: fmt.Sprintf("took %v", time.Since(phaseStart).Round(time.Millisecond)),
		})
	}

	ctx.Observer.Printf("All phases done in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
