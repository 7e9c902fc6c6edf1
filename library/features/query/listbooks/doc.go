// Package listbooks implements the catalog listing: search, category filter and pagination.
package listbooks
