// ABOUTME: Middleware chaining utility for composing HTTP middleware
// ABOUTME: Applies middleware in declaration order (first is outermost)

package middleware

import "net/http"

// Middleware wraps a handler. Every middleware in this package has this shape.
type Middleware = func(http.HandlerFunc) http.HandlerFunc

// Chain wraps h so the first middleware runs first.
// Chain(h, LogRequest, cors) is LogRequest(cors(h)).
func Chain(h http.HandlerFunc, middlewares ...Middleware) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
