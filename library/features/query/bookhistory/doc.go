// Package bookhistory reads the journal entries that reference a book, including rejected commands.
package bookhistory
