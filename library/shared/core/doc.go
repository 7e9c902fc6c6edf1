// Package core contains the pure domain of the library lifecycle service:
// closed status enums, the entities of the catalog, the loan ledger, the reservation queue and the fines,
// the rules that govern them, the domain events, and the DecisionResult returned by Decide functions.
//
// Nothing in this package performs I/O. Time is always passed in.
package core
