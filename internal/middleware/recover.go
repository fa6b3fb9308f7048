package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/nabinkhair42/pocket-due/internal/http/respond"
)

// Recover converts panics into 500 envelopes. The panic detail is included
// in the response only outside production.
func Recover(production bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				errText := "Internal server error"
				if !production {
					errText = fmt.Sprintf("%v", rec)
				}
				respond.Fail(w, http.StatusInternalServerError, "Internal server error", errText)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
