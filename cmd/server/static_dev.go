//go:build !embed
// +build !embed

package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// setupStaticFiles serves the prediction form from disk. WEB_DIR overrides
// the default location relative to the repository root.
func setupStaticFiles(router *gin.Engine) {
	dir := os.Getenv("WEB_DIR")
	if dir == "" {
		dir = "./cmd/server/web/dist"
	}
	log.Printf("🔧 Using local filesystem for form assets: %s", dir)

	router.StaticFile("/", dir+"/index.html")
	router.StaticFile("/app.js", dir+"/app.js")

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	})
}
