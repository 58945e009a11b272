// Package server implements the taskdeck HTTP JSON API.
//
// # Overview
//
// Server wires the store and token codec into route handlers. All
// responses use a uniform envelope:
//
//	{"success": true,  "data": ...}
//	{"success": false, "error": "..."}
//
// with statuses 200/201 for success, 400 for validation failures, 401
// for missing or invalid tokens, 403 for ownership violations, 404 for
// absent resources, and 500 for store or unexpected failures.
//
// # Authentication
//
// Protected routes are wrapped in auth.Middleware, which verifies the
// bearer token once and places the decoded claims in the request
// context. Handlers read the subject via auth.MustFromContext and apply
// per-resource ownership checks: a missing resource is reported as 404
// before ownership is compared, and a mismatch is 403. Self-only user
// routes compare the path id against the token subject before touching
// the store, so the result is the same whether the target exists or not.
package server
