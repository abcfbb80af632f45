package middleware

import (
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the explicit origins plus any origin whose host ends with
// one of the suffixes (e.g. ".netlify.app"). Credentials are allowed.
func CORS(origins, suffixes []string) gin.HandlerFunc {
	explicit := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		explicit[strings.TrimRight(o, "/")] = struct{}{}
	}

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if _, ok := explicit[origin]; ok {
				return true
			}
			return MatchesOriginSuffix(origin, suffixes)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// MatchesOriginSuffix reports whether origin's host ends with any suffix.
func MatchesOriginSuffix(origin string, suffixes []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Hostname()
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
