package journey

import (
	"fmt"

	"water-abstraction-admin/internal/returnreqs/domain"
)

// Step names. They double as the page segment in setup URLs.
const (
	StepStart                = "start"
	StepStartDate            = "start-date"
	StepReason               = "reason"
	StepMethod               = "method"
	StepPurpose              = "purpose"
	StepPoints               = "points"
	StepAbstractionPeriod    = "abstraction-period"
	StepReturnsCycle         = "returns-cycle"
	StepSiteDescription      = "site-description"
	StepFrequencyCollected   = "frequency-collected"
	StepFrequencyReported    = "frequency-reported"
	StepAgreementsExceptions = "agreements-exceptions"
	StepNote                 = "note"
	StepCheck                = "check"
)

// requirementSteps is the linear order of the per-requirement sub-steps.
var requirementSteps = []string{
	StepPurpose,
	StepPoints,
	StepAbstractionPeriod,
	StepReturnsCycle,
	StepSiteDescription,
	StepFrequencyCollected,
	StepFrequencyReported,
	StepAgreementsExceptions,
}

// StepPath builds the URL path for a step. index is ignored unless the step is
// one of the per-requirement sub-steps.
func StepPath(sessionID, step string, index int) string {
	if IsRequirementStep(step) {
		return fmt.Sprintf("/return-requirements/setup/%s/%s/%d", sessionID, step, index)
	}
	return fmt.Sprintf("/return-requirements/setup/%s/%s", sessionID, step)
}

// IsRequirementStep reports whether step operates on one requirement entry.
func IsRequirementStep(step string) bool {
	for _, s := range requirementSteps {
		if s == step {
			return true
		}
	}
	return false
}

// NextPath decides where a successful submission of step routes to.
//
// The first pass through the journey is strictly linear. Once the check page
// has been visited, every subsequent edit routes back to the check page
// instead of the next linear step. The note step always returns to check; it
// is only reachable from there.
func NextPath(doc *domain.Document, sessionID, step string, index int) string {
	if doc.CheckPageVisited || step == StepNote {
		return StepPath(sessionID, StepCheck, 0)
	}

	switch step {
	case StepStart:
		return StepPath(sessionID, StepStartDate, 0)
	case StepStartDate:
		return StepPath(sessionID, StepReason, 0)
	case StepReason:
		if doc.JourneyType == domain.JourneyNoReturnsRequired {
			return StepPath(sessionID, StepCheck, 0)
		}
		return StepPath(sessionID, StepMethod, 0)
	case StepMethod:
		if doc.Method == domain.MethodAbstractionData {
			return StepPath(sessionID, StepCheck, 0)
		}
		return StepPath(sessionID, StepPurpose, 0)
	}

	for i, s := range requirementSteps {
		if s != step {
			continue
		}
		if i == len(requirementSteps)-1 {
			return StepPath(sessionID, StepCheck, 0)
		}
		return StepPath(sessionID, requirementSteps[i+1], index)
	}

	return StepPath(sessionID, StepCheck, 0)
}
