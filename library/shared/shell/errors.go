package shell

import (
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

var (
	// ErrUnexpectedDecisionEvent is returned when a successful decision carries an event its handler cannot apply.
	ErrUnexpectedDecisionEvent = errors.New("decision carries an unexpected event")
)

// DecisionEvent returns the event of a successful decision as E.
func DecisionEvent[E core.DomainEvent](decision core.DecisionResult) (E, error) {
	event, ok := decision.Event.(E)
	if !ok {
		return event, fmt.Errorf("%w: %T", ErrUnexpectedDecisionEvent, decision.Event)
	}

	return event, nil
}
