// Package returnloan implements the Return Loan use case.
//
// A librarian takes a borrowed copy back. The loan becomes Returned with its return date set, the copy goes
// back on the shelf (capped at the total) and LoanReturned is journaled. Returning a loan that is already
// returned changes nothing. Returning never creates a fine, see package assessoverduefine.
package returnloan
