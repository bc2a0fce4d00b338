// Package server holds the HTTP server configuration and the Fiber app factory.
//
// NewApp installs an error handler rendering every failure as
//
//	{"error": {"kind": "NotFound", "message": "..."}}
//
// with the status mapped from the error kind. Handlers that answer inline use
// SendError for the same shape.
package server
