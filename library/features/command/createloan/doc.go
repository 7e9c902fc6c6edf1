// Package createloan implements the Create Loan use case.
//
// A librarian lends a copy of a book to a user. The handler loads the book, the user and any active
// loan of that user for that book, lets the pure Decide function judge the request, then takes a copy
// off the shelf with a guarded decrement, inserts the loan and journals LoanCreated, all in one
// transaction. Rejections are journaled as CreatingLoanFailed.
//
// Concurrent borrowers of the last copy race on the guarded decrement. The loser gets a concurrency
// conflict, is retried, reloads the book and is rejected by Decide with core.ErrUnavailable.
package createloan
