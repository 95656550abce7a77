package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/logging"
	"github.com/mkravets/linkjournal/internal/models"
	"github.com/mkravets/linkjournal/internal/server/auth"
)

type ctxKey int

const userIDKey ctxKey = 0

// UserID returns the authenticated uid stored by the auth middleware.
func UserID(ctx context.Context) string {
	uid, _ := ctx.Value(userIDKey).(string)
	return uid
}

// authenticate extracts the bearer token, verifies it, and stores the uid
// in the request context. Requests without a valid token never reach the
// handlers.
func authenticate(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeader)
			token, ok := strings.CutPrefix(header, common.BearerPrefix)
			if !ok || token == "" {
				respondJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "missing bearer token"})
				return
			}

			uid, err := verifier.Verify(r.Context(), token)
			if err != nil {
				respondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestLogger logs one line per request with the structured logger.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
