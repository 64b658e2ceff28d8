package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// wildcardOrigin represents an allowed-origin pattern with a single
// wildcard subdomain, e.g. "https://*.moodline-app.pages.dev".
type wildcardOrigin struct {
	scheme string
	suffix string
}

// parseWildcardOrigin parses an origin pattern containing a wildcard
// subdomain. Returns nil if the pattern is not a valid wildcard pattern:
// the wildcard must sit directly after the scheme, cover exactly one
// subdomain label, and the remaining domain must have at least two parts.
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	var scheme string
	switch {
	case strings.HasPrefix(pattern, "https://"):
		scheme = "https://"
	case strings.HasPrefix(pattern, "http://"):
		scheme = "http://"
	default:
		return nil
	}

	rest := pattern[len(scheme):]
	if strings.Count(rest, "*") != 1 || !strings.HasPrefix(rest, "*.") {
		return nil
	}

	suffix := rest[1:] // keep the leading dot
	// Require at least two domain parts after the wildcard so patterns
	// like "https://*.com" are rejected
	if strings.Count(suffix, ".") < 2 {
		return nil
	}

	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

// matches reports whether the given origin is covered by this pattern.
// Exactly one subdomain label may stand in for the wildcard.
func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) {
		return false
	}
	host := origin[len(w.scheme):]
	if !strings.HasSuffix(host, w.suffix) {
		return false
	}
	sub := host[:len(host)-len(w.suffix)]
	if sub == "" || strings.ContainsAny(sub, "./") {
		return false
	}
	return true
}

// CORS middleware to handle cross-origin requests
// Reads CORS_ALLOWED_ORIGINS environment variable to restrict origins;
// entries may be exact origins or wildcard patterns like
// "https://*.moodline-app.pages.dev". If not set, defaults to "*".
func CORS() gin.HandlerFunc {
	allowedOriginsStr := os.Getenv("CORS_ALLOWED_ORIGINS")
	allowAll := allowedOriginsStr == ""

	var exactOrigins []string
	var wildcardOrigins []*wildcardOrigin
	if !allowAll {
		for _, origin := range strings.Split(allowedOriginsStr, ",") {
			origin = strings.TrimSpace(origin)
			if wc := parseWildcardOrigin(origin); wc != nil {
				wildcardOrigins = append(wildcardOrigins, wc)
			} else {
				exactOrigins = append(exactOrigins, origin)
			}
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			allowed := false
			for _, exact := range exactOrigins {
				if origin == exact {
					allowed = true
					break
				}
			}
			if !allowed {
				for _, wc := range wildcardOrigins {
					if wc.matches(origin) {
						allowed = true
						break
					}
				}
			}

			if allowed {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			} else {
				// Origin not allowed, but still need to set headers for preflight
				if c.Request.Method == "OPTIONS" {
					c.AbortWithStatus(403)
					return
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
