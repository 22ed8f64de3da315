// Package middleware holds the gin middleware shared by every route:
// request ids, request logging and bearer token authentication.
package middleware
