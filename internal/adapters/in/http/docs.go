// Package http exposes the locker engine over a small JSON API built on echo.
//
// Every failure is rendered as
//
//	{"success": false, "kind": "<kind>", "message": "<text>"}
//
// where kind is one of the stable values returned by commands.ErrorKind.
package http
