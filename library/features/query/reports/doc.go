// Package reports computes the librarian reports and persists every generated report.
//
// The projections are pure functions over loan and fine rows:
//   - borrowing_trends: loans per borrow month, split into Borrowed and Returned
//   - popular_books: the ten books with the most active loans
//   - overdue: active loans past their due date
//   - fines_collected: totals of paid and unpaid fines
//   - active_users: users by number of active loans
package reports
