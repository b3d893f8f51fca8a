package main

import (
	"net/http"
	"strings"
)

// SkipCache is an http.Handler that disables the browser cache for the
// health endpoint and the live socket.
func SkipCache(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || strings.HasPrefix(r.URL.Path, "/ws/") {
			w.Header().Set("Cache-Control", "no-store")
		}

		h.ServeHTTP(w, r)
	})
}
