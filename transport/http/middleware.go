package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/observability"
	"github.com/layer-3/aio/service"
)

const (
	// ContextIdentityKey holds the *core.Identity in the gin context
	ContextIdentityKey = "identity"

	corsAllowMethods = "GET,POST,OPTIONS,PUT,DELETE"
)

// GateOptions tunes AuthMiddleware
type GateOptions struct {
	// AllowAnonymous lets requests without an Authorization header through
	// with no identity attached. Any other failure is still rejected.
	AllowAnonymous bool
}

// AuthMiddleware answers CORS preflights and runs every other request
// through the gate. Rejected requests get 401 with the NO_PERMISSION body.
func AuthMiddleware(gate *service.Gate, opts GateOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		outcome, err := authenticate(c, gate, opts)
		observability.GateDecisionsTotal.WithLabelValues(outcome.String(), core.Reason(err)).Inc()

		switch outcome {
		case core.OutcomePreflight:
			c.AbortWithStatus(http.StatusOK)
		case core.OutcomeRejected:
			slog.Warn("authentication failed",
				"path", c.Request.URL.Path,
				"remote_addr", c.ClientIP(),
				"reason", core.Reason(err),
				"error", err,
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, noPermission())
		default:
			c.Next()
		}
	}
}

// authenticate decorates the response with CORS headers and computes the
// outcome for the request. On success the identity is attached to both the
// gin context and the request context.
func authenticate(c *gin.Context, gate *service.Gate, opts GateOptions) (core.Outcome, error) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", c.GetHeader("Origin"))
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", c.GetHeader("Access-Control-Request-Headers"))

	if c.Request.Method == http.MethodOptions {
		return core.OutcomePreflight, nil
	}

	creds := core.Credentials{
		Authorization: c.GetHeader("Authorization"),
		Time:          c.GetHeader("Time"),
		Key:           c.GetHeader("Key"),
	}

	if opts.AllowAnonymous && creds.Authorization == "" {
		return core.OutcomeAnonymous, nil
	}

	identity, err := gate.Authenticate(c.Request.Context(), creds)
	if err != nil {
		return core.OutcomeRejected, err
	}

	c.Set(ContextIdentityKey, identity)
	c.Request = c.Request.WithContext(core.WithIdentity(c.Request.Context(), identity))

	slog.Debug("authentication succeeded",
		"subject", identity.Subject,
		"path", c.Request.URL.Path,
	)

	return core.OutcomeAuthenticated, nil
}

// RequireAuthentication rejects requests that reached it without an
// identity, which only happens in guest mode.
func RequireAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identityFrom(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, noPermission())
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) *core.Identity {
	v, exists := c.Get(ContextIdentityKey)
	if !exists {
		return nil
	}
	id, _ := v.(*core.Identity)
	return id
}
