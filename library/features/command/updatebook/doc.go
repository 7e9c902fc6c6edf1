// Package updatebook implements the Update Book use case.
//
// Staff edits bibliographic fields and may override both copy counters, for example after
// an inventory count. Only the fields present in the command change.
package updatebook
