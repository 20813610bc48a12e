package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/cek_senet_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPaths are never sent to PostHog.
var untrackedPaths = map[string]bool{
	"/health":            true,
	"/api/v1/auth/login": true,
}

// PosthogMiddleware tracks successful authenticated API calls as PostHog events.
// The event name is the route template, e.g. "/api/v1/documents/:documentID/transitions"
// becomes "api_v1_documents_:documentID_transitions".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := requestProperties(c)
		props["status_code"] = c.Writer.Status()
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent sends a custom domain event, such as a status transition, for the current user.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}
	props := requestProperties(c)
	for k, v := range properties {
		props[k] = v
	}
	posthogClient.Enqueue(userID, eventName, props)
}

func requestProperties(c *gin.Context) map[string]any {
	return map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"request_id": c.Writer.Header().Get("X-Request-ID"),
	}
}
