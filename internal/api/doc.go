// Package api wires the HTTP routes to their handlers.
//
// Handlers translate JSON requests into service calls and service outcomes
// back into status codes: 401 unauthenticated, 403 denied, 404 unknown record,
// 422 invalid fields.
package api
