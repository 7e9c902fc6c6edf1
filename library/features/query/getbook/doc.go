// Package getbook implements the single book lookup.
package getbook
