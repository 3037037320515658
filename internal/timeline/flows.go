package timeline

import (
	"fmt"
	"slices"

	"github.com/slok/hiretrack/internal/model"
)

// Built-in flow IDs.
const (
	FlowStandard            = "standard"
	FlowExpressRejection    = "express_rejection"
	FlowDirectShortlist     = "direct_shortlist"
	FlowImmediateAcceptance = "immediate_acceptance"
)

// Step IDs usable in flows.
const (
	StepApplied     = "applied"
	StepReviewing   = "reviewing"
	StepShortlisted = "shortlisted"
	StepFinal       = "final"
	StepRejected    = "rejected"
	StepAccepted    = "accepted"
)

// selectableFlows are the flows SelectFlowID can return, every flow set
// must define them.
var selectableFlows = []string{FlowStandard, FlowExpressRejection}

// DefaultFlows returns a fresh copy of the built-in flows keyed by ID.
func DefaultFlows() map[string]model.StatusFlow {
	return map[string]model.StatusFlow{
		FlowStandard: {
			ID:          FlowStandard,
			Name:        "Standard Process",
			Description: "Standard hiring process with review and shortlisting",
			Steps:       []string{StepApplied, StepReviewing, StepShortlisted, StepFinal},
		},
		FlowExpressRejection: {
			ID:          FlowExpressRejection,
			Name:        "Express Rejection",
			Description: "Application reviewed and not selected",
			Steps:       []string{StepApplied, StepReviewing, StepRejected},
		},
		FlowDirectShortlist: {
			ID:          FlowDirectShortlist,
			Name:        "Direct Shortlist",
			Description: "Fast-tracked straight to the shortlist",
			Steps:       []string{StepApplied, StepShortlisted, StepFinal},
		},
		FlowImmediateAcceptance: {
			ID:          FlowImmediateAcceptance,
			Name:        "Immediate Acceptance",
			Description: "Accepted without further review stages",
			Steps:       []string{StepApplied, StepAccepted},
		},
	}
}

// SelectFlowID returns the flow that narrates an application in the given
// status. Rejections are always told as happening right after review and
// anything else (acceptance included) uses the standard flow.
func SelectFlowID(status model.ApplicationStatus) string {
	if status == model.ApplicationStatusRejected {
		return FlowExpressRejection
	}
	return FlowStandard
}

// ValidateFlows checks a flow set can be used by a generator.
func ValidateFlows(flows map[string]model.StatusFlow) error {
	for _, id := range selectableFlows {
		if _, ok := flows[id]; !ok {
			return fmt.Errorf("flow %q is required: %w", id, model.ErrNotValid)
		}
	}

	for id, f := range flows {
		if err := ValidateFlow(f); err != nil {
			return fmt.Errorf("flow %q: %w", id, err)
		}
		if f.ID != id {
			return fmt.Errorf("flow %q is registered with id %q: %w", f.ID, id, model.ErrNotValid)
		}
	}

	// Rejected applications are narrated with this flow, it must end in a
	// terminal step.
	rej := flows[FlowExpressRejection].Steps
	if last := rej[len(rej)-1]; last != StepRejected && last != StepFinal {
		return fmt.Errorf("flow %q must end with %q or %q, not %q: %w", FlowExpressRejection, StepRejected, StepFinal, last, model.ErrNotValid)
	}

	return nil
}

// ValidateFlow checks a single flow definition.
func ValidateFlow(f model.StatusFlow) error {
	if f.ID == "" {
		return fmt.Errorf("id is required: %w", model.ErrNotValid)
	}
	if len(f.Steps) == 0 || f.Steps[0] != StepApplied {
		return fmt.Errorf("steps must begin with %q: %w", StepApplied, model.ErrNotValid)
	}

	seen := map[string]bool{}
	for _, s := range f.Steps {
		if _, ok := stepTemplates[s]; !ok {
			return fmt.Errorf("unknown step %q: %w", s, model.ErrNotValid)
		}
		if seen[s] {
			return fmt.Errorf("duplicated step %q: %w", s, model.ErrNotValid)
		}
		seen[s] = true
	}

	return nil
}

// MergeFlows returns the base flows with the overrides replacing the flows
// that share their ID.
func MergeFlows(base, overrides map[string]model.StatusFlow) map[string]model.StatusFlow {
	res := copyFlows(base)
	for id, f := range copyFlows(overrides) {
		res[id] = f
	}
	return res
}

func copyFlows(flows map[string]model.StatusFlow) map[string]model.StatusFlow {
	res := make(map[string]model.StatusFlow, len(flows))
	for id, f := range flows {
		f.Steps = slices.Clone(f.Steps)
		res[id] = f
	}
	return res
}
