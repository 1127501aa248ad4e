package utils

import "regexp"

// The rich-text editor leaves empty paragraphs behind, hard-codes image
// sizes and cannot produce <figure>. These patterns undo all three.
var (
	blankParagraphRe = regexp.MustCompile(`(?i)<p(?:\s[^>]*)?>(?:\s|&nbsp;|&#160;|\x{00a0})*</p>`)
	imgTagRe         = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	imgSizeAttrRe    = regexp.MustCompile(`(?i)\s+(?:height|width)\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'/>]+)`)
	captionedImageRe = regexp.MustCompile(
		`(?is)<p>\s*((?:<a\b[^>]*>\s*)?<img\b[^>]*>(?:\s*</a>)?)\s*</p>[ \t]*\r?\n[ \t]*<p\s+class="caption"[^>]*>(.*?)</p>`,
	)
)

// CleanEditorHTML normalises markup submitted from the rich-text editor:
// blank paragraphs go, image height/width attributes go, and an image
// paragraph followed on the next line by a caption paragraph becomes one
// <figure>. Any input is accepted and the result is stable under reapplication.
func CleanEditorHTML(body string) string {
	body = removeBlankParagraphs(body)
	body = stripImageSizes(body)
	return mergeCaptionedImages(body)
}

func removeBlankParagraphs(s string) string {
	for {
		next := blankParagraphRe.ReplaceAllString(s, "")
		if next == s {
			return s
		}
		s = next
	}
}

func stripImageSizes(s string) string {
	return imgTagRe.ReplaceAllStringFunc(s, func(tag string) string {
		return imgSizeAttrRe.ReplaceAllString(tag, "")
	})
}

func mergeCaptionedImages(s string) string {
	return captionedImageRe.ReplaceAllString(s, `<figure class="image">$1<figcaption>$2</figcaption></figure>`)
}
