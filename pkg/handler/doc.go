// Package handler renders JSON responses and turns errors into them.
//
// Every reply uses the JSONResponse envelope:
//
//	{"data": ..., "meta": {...}, "error": {"code": "...", "message": "..."}}
//
// Handlers return an HTTPError (or wrap one) to pick the status and error
// code; ErrorHandler logs the failure at a level derived from the status and
// renders it.
package handler
