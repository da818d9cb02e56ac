package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// timedWriter sets the process-time header when the handler first writes
// its response (WriteHeader or Write), instead of stamping it before the
// handler runs.
type timedWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
}

func (t *timedWriter) WriteHeader(status int) {
	if !t.wroteHeader {
		t.Header().Set("x-process-time", strconv.FormatInt(time.Since(t.start).Milliseconds(), 10))
		t.wroteHeader = true
	}
	t.ResponseWriter.WriteHeader(status)
}

func (t *timedWriter) Write(b []byte) (int, error) {
	if !t.wroteHeader {
		t.WriteHeader(http.StatusOK)
	}
	return t.ResponseWriter.Write(b)
}

// ResponseHeadersMiddleware stamps every response with a request id, the
// shared cache-control directive (handlers that need a stricter policy set
// their own header, which overwrites this since it's set first), and the
// handler's processing time.
func ResponseHeadersMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("x-request-id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("x-request-id", requestID)
		w.Header().Set("cache-control", "public, max-age=10, stale-while-revalidate=10")

		tw := &timedWriter{ResponseWriter: w, start: time.Now()}
		next(tw, r)
	}
}
