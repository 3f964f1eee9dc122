// SPDX-License-Identifier: MIT

// Package middleware holds the gin middleware shared by the HTTP surface.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDKey is the gin context key for the request ID.
	RequestIDKey = "request_id"

	// RequestIDHeader carries the server-issued ID back to the client.
	RequestIDHeader = "X-Request-ID"
)

// loggerKey holds the request-scoped logrus entry.
const loggerKey = "skylane.logger"

// maxClientIDLen bounds how much of a client-supplied ID reaches the logs.
const maxClientIDLen = 64

// RequestID tags every request with a time-ordered UUID (v7) and stores a
// logger carrying it, so handler log lines sort and group by request.
// A client X-Request-ID is recorded as "client_request_id" on that logger
// and never echoed back.
func RequestID(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := newRequestID()
		entry := log.WithField("request_id", id)
		if clientID := c.GetHeader(RequestIDHeader); clientID != "" {
			if len(clientID) > maxClientIDLen {
				clientID = clientID[:maxClientIDLen]
			}
			entry = entry.WithField("client_request_id", clientID)
		}

		c.Set(RequestIDKey, id)
		c.Set(loggerKey, entry)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// newRequestID prefers v7 and falls back to a random v4 if the clock
// source fails.
func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}

	return uuid.NewString()
}

// GetRequestID returns the request ID set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// Logger returns the request-scoped logger set by RequestID, or fallback
// when the middleware did not run.
func Logger(c *gin.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(logrus.FieldLogger); ok {
			return l
		}
	}

	return fallback
}
