// Package auth logs users in with email and password and resolves bearer tokens to principals.
//
// A session is an opaque random token stored server-side with an expiry. The role of a session is
// read from the user on every lookup, so a role change takes effect without a new login.
package auth
