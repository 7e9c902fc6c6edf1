// Package shell contains the plumbing shared by the command and query handlers.
//
// It provides:
//   - RetryWithExponentialBackoff for the load-decide-apply cycle of command handlers
//   - HandlerResult, the outcome of a command handler including retry metadata
//   - conversion between domain events and journal entries (StorableEventFrom, DomainEventFrom)
//   - EventMetadata with message, causation and correlation ids
//   - the Clock abstraction and the authenticated Principal carried by the context
//   - observability helpers for metrics, tracing and logging of commands and queries
package shell
