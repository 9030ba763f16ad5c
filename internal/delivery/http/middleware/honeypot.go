package middleware

import (
	"math/rand"
	"net/http"
	"strings"
	"time"

	"mockzen-backend/config"
	"mockzen-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const decoyLoginPage = `<!DOCTYPE html>
<html>
<head><title>Admin Login</title></head>
<body>
<h1>Administrator Login</h1>
<form method="POST" action="/admin/login">
<input type="text" name="username" placeholder="Username" />
<input type="password" name="password" placeholder="Password" />
<button type="submit">Sign In</button>
</form>
</body>
</html>`

// Honeypot serves a decoy admin surface. Every hit under /admin is recorded
// and answered with plausible but useless responses. The real admin API
// lives under an unguessable path and is never intercepted here.
//
// The decoy login ALWAYS returns 401, whatever credentials are submitted.
func Honeypot(cfg *config.Config, recorder *security.HoneypotRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if !cfg.HoneypotEnabled || !strings.HasPrefix(path, "/admin") {
			c.Next()
			return
		}

		// Never trap the real admin surface
		if cfg.RealAdminPath != "" && strings.HasPrefix(path, cfg.RealAdminPath) {
			c.Next()
			return
		}

		requestID, _ := c.Get("RequestID")
		reqIDStr, _ := requestID.(string)

		attempt := security.HoneypotAttempt{
			Path:      path,
			Method:    c.Request.Method,
			IP:        c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			Referer:   c.GetHeader("Referer"),
			RequestID: reqIDStr,
		}

		if path == "/admin/login" && c.Request.Method == http.MethodPost {
			attempt.Username = c.PostForm("username")
			if attempt.Username == "" {
				var body struct {
					Username string `json:"username"`
					Email    string `json:"email"`
				}
				if err := c.ShouldBindJSON(&body); err == nil {
					attempt.Username = body.Username
					if attempt.Username == "" {
						attempt.Username = body.Email
					}
				}
			}
			recorder.Record(c.Request.Context(), attempt)

			// Mimic a password check taking a moment
			time.Sleep(time.Duration(200+rand.Intn(400)) * time.Millisecond)

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		recorder.Record(c.Request.Context(), attempt)

		switch {
		case path == "/admin" || path == "/admin/" || path == "/admin/login":
			c.Header("Content-Type", "text/html; charset=utf-8")
			c.String(http.StatusOK, decoyLoginPage)
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		}
		c.Abort()
	}
}
