package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

type wrappedWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *wrappedWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// silentPrefixes are high-frequency endpoints that are only logged on
// errors (status >= 400). Playback clock updates arrive several times per
// second and would drown everything else.
var silentPrefixes = []string{
	"/api/playback/",
	"/api/jobs",
}

func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &wrappedWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		if wrapped.statusCode < 400 {
			for _, p := range silentPrefixes {
				if strings.HasPrefix(r.URL.Path, p) {
					return
				}
			}
		}
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
	})
}
