// Package httpapi exposes the library over HTTP with JSON bodies.
//
// Every route except /health and POST /auth/login needs "Authorization: Bearer <token>".
// Errors are written as {"error": message, "code": code}; the status follows core.StatusCode.
package httpapi
