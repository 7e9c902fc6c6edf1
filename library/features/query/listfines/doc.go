// Package listfines implements the fine listing. Members see only fines on their own loans.
package listfines
