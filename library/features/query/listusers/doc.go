// Package listusers implements the user listing for admins.
package listusers
