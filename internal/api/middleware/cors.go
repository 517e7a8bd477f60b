package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ConfigCORS allows the configured frontend origins. allowedDomains is a
// comma separated list; "*" opens the API up for local development.
func ConfigCORS(allowedDomains string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if allowedDomains == "*" {
		conf.AllowAllOrigins = true
		conf.AllowCredentials = false
	} else {
		domains := strings.Split(allowedDomains, ",")
		for i := range domains {
			domains[i] = strings.TrimSpace(domains[i])
		}
		conf.AllowOrigins = domains
	}

	return cors.New(conf)
}
