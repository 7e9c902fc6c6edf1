// Package addbook implements the Add Book use case: a new entry enters the catalog.
package addbook
