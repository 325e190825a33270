package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-lead-keeper/internal/utils"
)

const (
	traceIDHeader = "X-Trace-ID"

	// upstream ids longer than this are replaced with a fresh one
	maxTraceIDLength = 128
)

// withTraceID attaches a request-scoped child logger carrying "trace_id" and
// echoes the id in the X-Trace-ID response header. A well-formed upstream id
// is reused.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !validTraceID(traceID) {
			traceID = utils.NewTraceID()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
