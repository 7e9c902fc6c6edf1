package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents ledger.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent ledger.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.BookAddedToCatalogEventType:
		return unmarshalDomainEvent[core.BookAddedToCatalog](payload)

	case core.BookUpdatedEventType:
		return unmarshalDomainEvent[core.BookUpdated](payload)

	case core.BookRemovedFromCatalogEventType:
		return unmarshalDomainEvent[core.BookRemovedFromCatalog](payload)

	case core.LoanCreatedEventType:
		return unmarshalDomainEvent[core.LoanCreated](payload)

	case core.LoanReturnedEventType:
		return unmarshalDomainEvent[core.LoanReturnedEvent](payload)

	case core.ReservationCreatedEventType:
		return unmarshalDomainEvent[core.ReservationCreated](payload)

	case core.ReservationStatusChangedEventType:
		return unmarshalDomainEvent[core.ReservationStatusChanged](payload)

	case core.ReservationCancelledEventType:
		return unmarshalDomainEvent[core.ReservationCancelledEvent](payload)

	case core.FineAssessedEventType:
		return unmarshalDomainEvent[core.FineAssessed](payload)

	case core.FinePaymentStatusChangedEventType:
		return unmarshalDomainEvent[core.FinePaymentStatusChanged](payload)

	case core.UserRegisteredEventType:
		return unmarshalDomainEvent[core.UserRegistered](payload)

	default:
		if core.IsFailureEventType(storableEvent.EventType) {
			return unmarshalDomainEvent[core.OperationFailed](payload)
		}
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalDomainEvent[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
