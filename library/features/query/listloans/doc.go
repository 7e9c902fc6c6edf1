// Package listloans implements the loan listing. Members see only their own loans.
package listloans
