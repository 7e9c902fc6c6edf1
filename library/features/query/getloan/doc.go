// Package getloan implements the loan detail lookup: the loan with its book, borrower and fine.
package getloan
