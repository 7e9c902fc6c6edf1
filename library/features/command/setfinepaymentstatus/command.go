package setfinepaymentstatus

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	commandType = "SetFinePaymentStatus"
)

// Command represents the intent to change the payment status of a fine.
// NewStatus is raw input; Decide validates it.
type Command struct {
	FineID     uuid.UUID
	NewStatus  string
	Actor      core.Principal
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(fineID uuid.UUID, newStatus string, actor core.Principal, occurredAt time.Time) Command {
	return Command{
		FineID:     fineID,
		NewStatus:  newStatus,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
