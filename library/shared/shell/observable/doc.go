// Package observable decorates command and query handlers with metrics, tracing and logging.
//
// The wrappers translate a handler's HandlerResult and error into metrics, span statuses and log records
// without touching the business logic of the wrapped handler.
package observable
