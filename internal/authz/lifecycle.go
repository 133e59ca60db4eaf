package authz

import (
	"github.com/SAP-F-2025/school-service/internal/models"
)

// YearState is the lifecycle state of an academic year, derived from its
// status and configured flag.
type YearState string

const (
	StateActiveUnconfigured   YearState = "active"
	StateActiveConfigured     YearState = "active_configured"
	StateInactiveUnconfigured YearState = "inactive"
	StateInactiveConfigured   YearState = "inactive_configured"
)

// YearStateOf derives the lifecycle state from the stored fields.
func YearStateOf(status models.YearStatus, isConfig bool) YearState {
	switch {
	case status == models.YearActive && !isConfig:
		return StateActiveUnconfigured
	case status == models.YearActive && isConfig:
		return StateActiveConfigured
	case isConfig:
		return StateInactiveConfigured
	default:
		return StateInactiveUnconfigured
	}
}

// YearEvent is a mutating operation attempted against an academic year.
type YearEvent string

const (
	// EventStructuralEdit changes dates, semesters or any field other than
	// the status flip.
	EventStructuralEdit YearEvent = "structural_edit"
	// EventAttachDependent creates a department, class or evaluation under
	// the year. The first occurrence marks the year configured.
	EventAttachDependent YearEvent = "attach_dependent"
	// EventDeactivate retires the year ({status: inactive} and nothing else).
	EventDeactivate YearEvent = "deactivate"
	// EventActivate sets status back to active.
	EventActivate YearEvent = "activate"
	// EventDelete removes the year.
	EventDelete YearEvent = "delete"
)

// yearTransitions is the state×event decision table. An empty string means
// the event is allowed in that state; anything else is the denial reason.
// Guard logic is data, not branching prose, so every transition can be
// tested exhaustively.
var yearTransitions = map[YearState]map[YearEvent]string{
	StateActiveUnconfigured: {
		EventStructuralEdit:  "",
		EventAttachDependent: "",
		EventDeactivate:      "",
		EventActivate:        "",
		EventDelete:          "active academic year cannot be deleted",
	},
	StateActiveConfigured: {
		EventStructuralEdit:  "configured academic year only accepts a status flip to inactive",
		EventAttachDependent: "",
		EventDeactivate:      "",
		EventActivate:        "configured academic year only accepts a status flip to inactive",
		EventDelete:          "configured academic year cannot be deleted",
	},
	StateInactiveUnconfigured: {
		EventStructuralEdit:  "inactive academic year is read-only",
		EventAttachDependent: "inactive academic year does not accept new entities",
		EventDeactivate:      "academic year is already inactive",
		EventActivate:        "",
		EventDelete:          "",
	},
	StateInactiveConfigured: {
		EventStructuralEdit:  "inactive academic year is read-only",
		EventAttachDependent: "inactive academic year does not accept new entities",
		EventDeactivate:      "academic year is already inactive",
		EventActivate:        "",
		EventDelete:          "configured academic year cannot be deleted",
	},
}

// CheckYearEvent consults the transition table once for a mutating call.
// Denials are terminal Forbidden errors carrying the table reason.
func CheckYearEvent(status models.YearStatus, isConfig bool, event YearEvent) error {
	state := YearStateOf(status, isConfig)
	reason, known := yearTransitions[state][event]
	if !known {
		return forbidden("unknown academic year event %q", event)
	}
	if reason != "" {
		return forbidden("%s", reason)
	}
	return nil
}

// CheckYearActivation guards the single-active-year invariant when a year
// is (re)activated. The partial unique index on academic_years is the
// authoritative guarantee; this check only yields the friendlier error.
func CheckYearActivation(otherActiveExists bool) error {
	if otherActiveExists {
		return conflict("school already has an active academic year")
	}
	return nil
}

// YearUpdate describes which parts of an update payload are present, after
// strict payload inspection by the service layer.
type YearUpdate struct {
	Structural bool
	Status     *models.YearStatus
}

// EventsForYearUpdate maps an inspected payload to the lifecycle events it
// must pass. A payload mixing structural fields with a status flip must
// pass both.
func EventsForYearUpdate(u YearUpdate) []YearEvent {
	var events []YearEvent
	if u.Structural {
		events = append(events, EventStructuralEdit)
	}
	if u.Status != nil {
		if *u.Status == models.YearInactive {
			events = append(events, EventDeactivate)
		} else {
			events = append(events, EventActivate)
		}
	}
	return events
}
