package alloc

import (
	"errors"
	"fmt"

	"github.com/icecake0141/patchwork-beta/internal/domain"
)

// ValidationError reports every schema problem found in a project, not just
// the first — callers get the full list in one pass.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	return errors.Join(e.Problems...).Error()
}

func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// Validate checks a project against the schema rules the allocator relies
// on: unique rack ids, every demand resolving to known, distinct racks, a
// positive count, and a recognized endpoint_type. It never consults the
// allocator itself — every branch here is a total, static check.
func Validate(project domain.Project) error {
	var problems []error

	seen := make(map[string]bool, len(project.Racks))
	for _, rack := range project.Racks {
		if seen[rack.ID] {
			problems = append(problems, fmt.Errorf("%w: %q", domain.ErrDuplicateRackID, rack.ID))
			continue
		}
		seen[rack.ID] = true
	}

	for _, demand := range project.Demands {
		if demand.Src == demand.Dst {
			problems = append(problems, fmt.Errorf("%w: demand %q (%s)", domain.ErrSelfLoop, demand.ID, demand.Src))
		}
		if !seen[demand.Src] {
			problems = append(problems, fmt.Errorf("%w: demand %q src %q", domain.ErrUnknownRack, demand.ID, demand.Src))
		}
		if !seen[demand.Dst] {
			problems = append(problems, fmt.Errorf("%w: demand %q dst %q", domain.ErrUnknownRack, demand.ID, demand.Dst))
		}
		if demand.Count <= 0 {
			problems = append(problems, fmt.Errorf("%w: demand %q count %d", domain.ErrNonPositiveCount, demand.ID, demand.Count))
		}
		if !domain.KnownEndpointTypes[demand.EndpointType] {
			problems = append(problems, fmt.Errorf("%w: demand %q endpoint_type %q", domain.ErrUnknownEndpoint, demand.ID, demand.EndpointType))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}
