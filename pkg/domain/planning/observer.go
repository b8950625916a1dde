package planning

import (
	"github.com/shopspring/decimal"
)

// PlanKind names the computation emitting an event.
type PlanKind int

const (
	KindLevelMPS PlanKind = iota
	KindChaseMPS
	KindMRP
)

func (k PlanKind) String() string {
	switch k {
	case KindLevelMPS:
		return "level_mps"
	case KindChaseMPS:
		return "chase_mps"
	case KindMRP:
		return "mrp"
	default:
		return "Unknown"
	}
}

// EventKind names a step of a planning computation.
type EventKind int

const (
	EventPlanStarted EventKind = iota
	EventPeriodComputed
	EventOverdueRelease
	EventPlanFinished
)

func (k EventKind) String() string {
	switch k {
	case EventPlanStarted:
		return "plan_started"
	case EventPeriodComputed:
		return "period_computed"
	case EventOverdueRelease:
		return "overdue_release"
	case EventPlanFinished:
		return "plan_finished"
	default:
		return "Unknown"
	}
}

// Event describes one step of a planning computation. Fields carries the
// quantities relevant to the step, keyed by short snake_case names.
type Event struct {
	Plan   PlanKind
	Kind   EventKind
	Period int // 0 for run-level events
	Fields map[string]decimal.Decimal
}

// Observer receives planning events. A nil Observer is a no-op; the planners
// themselves stay pure and return only their result structures.
type Observer func(Event)

// notify invokes the observer if one is set.
func (o Observer) notify(e Event) {
	if o != nil {
		o(e)
	}
}
