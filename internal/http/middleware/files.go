package middleware

import (
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

var inlineFileExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".heic": true,
	".heif": true,
}

// FileHeaders locks down responses for stored uploads. Browsers may not sniff
// a different type, scripts never run, and only image files render inline.
func FileHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Content-Security-Policy", "default-src 'none'; sandbox")

		ext := strings.ToLower(path.Ext(c.Request.URL.Path))
		if inlineFileExtensions[ext] {
			h.Set("Content-Disposition", "inline")
		} else {
			h.Set("Content-Disposition", "attachment")
		}
		c.Next()
	}
}
