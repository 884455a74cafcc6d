package middleware

import (
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every request on arrival and on completion, with status and latency.
func RequestLogger(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			entry := logger.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"remote_ip":  r.RemoteAddr,
				"user_agent": r.UserAgent(),
			})
			if reqID := chiMiddleware.GetReqID(r.Context()); reqID != "" {
				entry = entry.WithField("request_id", reqID)
			}
			entry.Debug("Incoming request")

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			statusCode := ww.Status()
			if statusCode == 0 {
				statusCode = http.StatusOK
			}
			completed := entry.WithFields(logrus.Fields{
				"status_code": statusCode,
				"latency_ms":  time.Since(startTime).Milliseconds(),
				"bytes":       ww.BytesWritten(),
			})

			switch {
			case statusCode >= 500:
				completed.Error("Request completed with server error")
			case statusCode >= 400:
				completed.Warn("Request completed with client error")
			default:
				completed.Info("Request completed successfully")
			}
		})
	}
}
