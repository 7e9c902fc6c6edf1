// Package registeruser implements the Register User use case.
//
// Admins register users with a role and an initial password. Emails are unique, case-insensitively.
// The password is stored as a bcrypt hash only.
package registeruser
