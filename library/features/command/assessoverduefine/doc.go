// Package assessoverduefine implements the automatic Assess Overdue Fine use case.
//
// The amount is days overdue times the rate per day. Days are counted up to the return date
// for returned loans and up to today for loans still out.
package assessoverduefine
