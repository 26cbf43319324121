// ABOUTME: Composes route and global middleware into one handler
// ABOUTME: The first middleware listed runs first on the way in

package middleware

import "net/http"

// Chain wraps h so that Chain(h, a, b) serves as a(b(h)).
func Chain(h http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
