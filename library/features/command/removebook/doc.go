// Package removebook implements the Remove Book use case.
//
// A book with copies still out on active loans cannot be removed. Removing a book deletes
// its past loans, fines and reservations with it.
package removebook
