// Package content converts stored rich text (TipTap JSON documents, or legacy
// HTML) into HTML for display and plain text for previews, emails and push.
package content

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

const youtubeEmbedBase = "https://www.youtube-nocookie.com/embed/"

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// IsHTML reports whether content is legacy HTML rather than a JSON document.
func IsHTML(content string) bool {
	return strings.HasPrefix(content, "<")
}

// ToHTML renders a TipTap document. HTML input is returned unchanged and
// anything that is not valid JSON renders to "".
func ToHTML(content string) string {
	if IsHTML(content) {
		return content
	}
	if !gjson.Valid(content) {
		return ""
	}
	var b strings.Builder
	renderNode(&b, gjson.Parse(content))
	return b.String()
}

// ToPlainText extracts readable text. Videos become "[Video] " and paragraphs
// are separated by a space. maxLength <= 0 disables truncation.
func ToPlainText(content string, maxLength int) string {
	var text string
	if IsHTML(content) {
		text = html.UnescapeString(tagPattern.ReplaceAllString(content, ""))
	} else {
		if !gjson.Valid(content) {
			return ""
		}
		text = strings.TrimSpace(extractText(gjson.Parse(content)))
	}
	if maxLength > 0 {
		return Truncate(text, maxLength)
	}
	return text
}

// Truncate cuts text to maxLength runes, ending in "..." when shortened.
func Truncate(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return string([]rune(text)[:maxLength])
	}
	return string([]rune(text)[:maxLength-3]) + "..."
}

func extractText(node gjson.Result) string {
	if node.Type == gjson.String {
		return node.String()
	}
	if !node.IsObject() {
		return ""
	}

	nodeType := node.Get("type").String()
	if nodeType == "youtube" {
		return "[Video] "
	}

	var b strings.Builder
	b.WriteString(node.Get("text").String())
	node.Get("content").ForEach(func(_, child gjson.Result) bool {
		b.WriteString(extractText(child))
		return true
	})

	text := b.String()
	if nodeType == "paragraph" && text != "" {
		text += " "
	}
	return text
}

func renderNode(b *strings.Builder, node gjson.Result) {
	switch node.Get("type").String() {
	case "text":
		renderText(b, node)
		return
	case "hardBreak":
		b.WriteString("<br>")
		return
	case "image":
		renderImage(b, node.Get("attrs"))
		return
	case "youtube":
		renderYouTube(b, node.Get("attrs"))
		return
	}

	tag := blockTag(node)
	if tag != "" {
		b.WriteString("<" + tag + ">")
	}
	node.Get("content").ForEach(func(_, child gjson.Result) bool {
		renderNode(b, child)
		return true
	})
	if tag != "" {
		b.WriteString("</" + tag + ">")
	}
}

func blockTag(node gjson.Result) string {
	switch node.Get("type").String() {
	case "paragraph":
		return "p"
	case "blockquote":
		return "blockquote"
	case "orderedList":
		return "ol"
	case "bulletList":
		return "ul"
	case "listItem":
		return "li"
	}
	// doc and unknown wrappers render their children only.
	return ""
}

func renderText(b *strings.Builder, node gjson.Result) {
	text := html.EscapeString(node.Get("text").String())
	node.Get("marks").ForEach(func(_, mark gjson.Result) bool {
		switch mark.Get("type").String() {
		case "bold":
			text = "<strong>" + text + "</strong>"
		case "italic":
			text = "<em>" + text + "</em>"
		case "link":
			href := mark.Get("attrs.href").String()
			if safeHref(href) {
				text = `<a href="` + html.EscapeString(href) + `" target="_blank" rel="noopener noreferrer">` + text + "</a>"
			}
		}
		return true
	})
	b.WriteString(text)
}

func renderImage(b *strings.Builder, attrs gjson.Result) {
	src := attrs.Get("src").String()
	if !safeHref(src) {
		return
	}
	b.WriteString(`<img src="` + html.EscapeString(src) + `"`)
	if alt := attrs.Get("alt").String(); alt != "" {
		b.WriteString(` alt="` + html.EscapeString(alt) + `"`)
	}
	if title := attrs.Get("title").String(); title != "" {
		b.WriteString(` title="` + html.EscapeString(title) + `"`)
	}
	b.WriteString(">")
}

func renderYouTube(b *strings.Builder, attrs gjson.Result) {
	videoID := youtubeVideoID(attrs.Get("src").String())
	if videoID == "" {
		return
	}
	b.WriteString(`<div data-youtube-video=""><iframe src="` + youtubeEmbedBase + url.PathEscape(videoID) +
		`" width="640" height="480" allowfullscreen="true"></iframe></div>`)
}

// youtubeVideoID accepts watch, short and embed URLs.
func youtubeVideoID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtu.be":
		return strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		if rest, ok := strings.CutPrefix(u.Path, "/embed/"); ok {
			return strings.Trim(rest, "/")
		}
		if rest, ok := strings.CutPrefix(u.Path, "/shorts/"); ok {
			return strings.Trim(rest, "/")
		}
	}
	return ""
}

func safeHref(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return true
	}
	return false
}
