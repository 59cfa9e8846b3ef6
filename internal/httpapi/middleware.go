package httpapi

import (
	"bytes"
	"log"
	"net/http"
	"time"
)

// statusRecorder captures what a handler wrote so the request log can show
// the status, size and the start of the body.
type statusRecorder struct {
	http.ResponseWriter

	statusCode   int
	maxLogBytes  int
	bytesWritten int
	logBody      bytes.Buffer
	truncated    bool
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.bytesWritten += n

	if remaining := r.maxLogBytes - r.logBody.Len(); remaining > 0 {
		chunk := p[:n]
		if len(chunk) > remaining {
			chunk = chunk[:remaining]
			r.truncated = true
		}
		r.logBody.Write(chunk)
	} else if n > 0 {
		r.truncated = true
	}
	return n, err
}

func withRequestLogging(next http.Handler, logger *log.Logger, maxLogBytes int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			maxLogBytes:    maxLogBytes,
		}

		next.ServeHTTP(recorder, r)

		elapsed := time.Since(start).Round(time.Microsecond)
		if recorder.statusCode < http.StatusBadRequest {
			logger.Printf("%s %s -> %d (%d bytes, %s)", r.Method, r.URL.Path, recorder.statusCode, recorder.bytesWritten, elapsed)
			return
		}

		body := bytes.TrimSpace(recorder.logBody.Bytes())
		suffix := ""
		if recorder.truncated {
			suffix = "..."
		}
		logger.Printf("%s %s -> %d (%d bytes, %s): %s%s", r.Method, r.URL.Path, recorder.statusCode, recorder.bytesWritten, elapsed, body, suffix)
	})
}

func withRecovery(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}
				logger.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, recovered)
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
