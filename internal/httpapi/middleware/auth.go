package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

type Keys struct {
	Public []string
	Admin  []string
}

func readAuth(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}

func hasKey(given string, set []string) bool {
	if given == "" {
		return false
	}
	for _, k := range set {
		if subtle.ConstantTimeCompare([]byte(k), []byte(given)) == 1 {
			return true
		}
	}
	return false
}

// RequireAny lets through requests carrying a public or admin key.
// With no keys configured every request passes.
func RequireAny(keys Keys) func(http.Handler) http.Handler {
	allowed := append(append([]string(nil), keys.Public...), keys.Admin...)
	return guard(allowed, http.StatusUnauthorized, `{"error":"unauthorized"}`)
}

// RequireAdmin lets through requests carrying an admin key.
// With no admin keys configured every request passes.
func RequireAdmin(keys Keys) func(http.Handler) http.Handler {
	return guard(keys.Admin, http.StatusForbidden, `{"error":"forbidden"}`)
}

func guard(allowed []string, status int, body string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(allowed) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasKey(readAuth(r), allowed) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		})
	}
}
