package content

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var allowedIframePrefixes = []string{
	"https://www.youtube.com/embed/",
	"https://www.youtube-nocookie.com/embed/",
}

var (
	iframePattern    = regexp.MustCompile(`(?is)<iframe\b[^>]*>(.*?</iframe>)?`)
	iframeSrcPattern = regexp.MustCompile(`(?is)\bsrc\s*=\s*["']([^"']*)["']`)
	youtubeSrc       = regexp.MustCompile(`^https://www\.youtube(-nocookie)?\.com/embed/[A-Za-z0-9_\-]+(\?[A-Za-z0-9=&_\-]*)?$`)
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("iframe")
	p.AllowAttrs("src").Matching(youtubeSrc).OnElements("iframe")
	p.AllowAttrs("width", "height", "allowfullscreen", "frameborder").OnElements("iframe")
	p.AllowAttrs("data-youtube-video").OnElements("div")
	p.RequireNoFollowOnLinks(false)
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize strips everything unsafe from user supplied HTML. Scripts and styles
// are removed, links open in a new tab without a referrer, and iframes survive
// only when they embed YouTube.
func Sanitize(html string) string {
	html = iframePattern.ReplaceAllStringFunc(html, func(tag string) string {
		m := iframeSrcPattern.FindStringSubmatch(tag)
		if m == nil || !allowedIframe(m[1]) {
			return ""
		}
		return tag
	})
	return policy.Sanitize(html)
}

// RenderSafeHTML is ToHTML followed by Sanitize.
func RenderSafeHTML(content string) string {
	return Sanitize(ToHTML(content))
}

func allowedIframe(src string) bool {
	for _, prefix := range allowedIframePrefixes {
		if strings.HasPrefix(src, prefix) {
			return true
		}
	}
	return false
}
