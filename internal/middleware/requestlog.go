package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID returns the id assigned to the current request, if any.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger tags every request with an id, logs one line when it completes
// and recovers panics into a 500.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	log := base.With().Str("module", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		reqLog := log.With().Str(requestIDKey, id).Logger()
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))

		defer func() {
			if r := recover(); r != nil {
				reqLog.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("handler panicked")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal_error"})
			}
			status := c.Writer.Status()
			ev := reqLog.Info()
			switch {
			case status >= 500:
				ev = reqLog.Error()
			case status >= 400:
				ev = reqLog.Warn()
			}
			if len(c.Errors) > 0 {
				ev = ev.Err(c.Errors.Last().Err)
			}
			ev.Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("route", c.FullPath()).
				Int("status", status).
				Str("client_ip", c.ClientIP()).
				Dur("took", time.Since(start)).
				Msg("request")
		}()

		c.Next()
	}
}
