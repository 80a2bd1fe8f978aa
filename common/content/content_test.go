package content_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"churchthreads.app/api/common/content"
)

const doc = `{"type":"doc","content":[
	{"type":"paragraph","content":[
		{"type":"text","text":"Potluck "},
		{"type":"text","text":"Sunday","marks":[{"type":"bold"}]},
		{"type":"text","text":" after service"}
	]},
	{"type":"youtube","attrs":{"src":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}},
	{"type":"paragraph","content":[
		{"type":"text","text":"sign up","marks":[{"type":"link","attrs":{"href":"https://example.com/signup"}}]},
		{"type":"hardBreak"},
		{"type":"text","text":"a < b"}
	]}
]}`

var _ = Describe("ToHTML", func() {
	It("renders paragraphs, marks, breaks and escapes text", func() {
		out := content.ToHTML(doc)
		Expect(out).To(HavePrefix("<p>Potluck <strong>Sunday</strong> after service</p>"))
		Expect(out).To(ContainSubstring(`<a href="https://example.com/signup" target="_blank" rel="noopener noreferrer">sign up</a><br>a &lt; b`))
	})

	It("renders YouTube videos as nocookie embeds", func() {
		Expect(content.ToHTML(doc)).To(ContainSubstring(`<iframe src="https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ"`))
	})

	It("passes HTML through unchanged", func() {
		Expect(content.ToHTML("<p>hello</p>")).To(Equal("<p>hello</p>"))
	})

	It("returns an empty string for invalid JSON", func() {
		Expect(content.ToHTML("{not json")).To(BeEmpty())
	})

	It("drops links with unsafe schemes", func() {
		out := content.ToHTML(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"x","marks":[{"type":"link","attrs":{"href":"javascript:alert(1)"}}]}]}]}`)
		Expect(out).To(Equal("<p>x</p>"))
	})
})

var _ = Describe("ToPlainText", func() {
	It("extracts text with video placeholders and paragraph spacing", func() {
		Expect(content.ToPlainText(doc, 0)).To(Equal("Potluck Sunday after service [Video] sign upa < b"))
	})

	It("truncates to exactly maxLength with an ellipsis", func() {
		out := content.ToPlainText(doc, 20)
		Expect(out).To(Equal("Potluck Sunday af..."))
		Expect([]rune(out)).To(HaveLen(20))
	})

	It("does not truncate short text", func() {
		Expect(content.ToPlainText(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Hi"}]}]}`, 20)).To(Equal("Hi"))
	})

	It("strips tags from HTML", func() {
		Expect(content.ToPlainText("<p>Hello <b>there</b></p>", 0)).To(Equal("Hello there"))
	})

	It("returns an empty string for invalid JSON", func() {
		Expect(content.ToPlainText("nope", 10)).To(BeEmpty())
	})
})

var _ = Describe("Sanitize", func() {
	It("removes scripts and styles", func() {
		out := content.Sanitize(`<p>hi</p><script>alert(1)</script><style>p{}</style>`)
		Expect(out).To(Equal("<p>hi</p>"))
	})

	It("keeps YouTube embeds", func() {
		out := content.Sanitize(`<iframe src="https://www.youtube-nocookie.com/embed/abc123"></iframe>`)
		Expect(out).To(ContainSubstring(`src="https://www.youtube-nocookie.com/embed/abc123"`))
	})

	It("removes other iframes", func() {
		out := content.Sanitize(`<p>a</p><iframe src="https://evil.example.com/embed/x"></iframe>`)
		Expect(out).To(Equal("<p>a</p>"))
	})

	It("opens links in a new tab without leaking the opener", func() {
		out := content.Sanitize(`<a href="https://example.com">x</a>`)
		Expect(out).To(ContainSubstring(`target="_blank"`))
		Expect(out).To(ContainSubstring("noopener"))
	})
})
