package utils

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestCleanEditorHTML_Examples(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty paragraph", `<p></p>`, ``},
		{"nbsp paragraph", `<p>&nbsp;</p>`, ``},
		{"unicode nbsp paragraph", "<p>\u00a0</p>", ``},
		{"whitespace paragraph with attributes", "<p style=\"x\">\n\t </p>", ``},
		{"image sizes", `<img src="a.jpg" height="100" width="200">`, `<img src="a.jpg">`},
		{"image sizes any order and quoting", `<IMG width=200 alt='x' Height='1'/>`, `<IMG alt='x'/>`},
		{"data attributes survive", `<img data-width="3" src="a.jpg">`, `<img data-width="3" src="a.jpg">`},
		{"width outside img untouched", `<table width="100"></table>`, `<table width="100"></table>`},
		{
			"image and caption",
			"<p><img src=\"a.jpg\" /></p>\n<p class=\"caption\">Cap</p>",
			`<figure class="image"><img src="a.jpg" /><figcaption>Cap</figcaption></figure>`,
		},
		{
			"caption not on next line",
			"<p><img src=\"a.jpg\"></p>\n\n<p class=\"caption\">Cap</p>",
			"<p><img src=\"a.jpg\"></p>\n\n<p class=\"caption\">Cap</p>",
		},
		{"paragraph with text kept", `<p>Hi</p>`, `<p>Hi</p>`},
		{"empty string", ``, ``},
		{"not html", `a < b && c > d`, `a < b && c > d`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanEditorHTML(tc.in))
		})
	}
}

func TestCleanEditorHTML_Idempotent(t *testing.T) {
	inputs := []string{
		"<p><p><p>&nbsp;</p></p></p>",
		"<p><img src=\"a\" width=\"1\"></p>\r\n<p class=\"caption\"><p></p>x</p>",
		"<p><a href=\"/\"><img height=2 src=\"b\"></a></p>\n<p class=\"caption\">c</p>\n<p class=\"caption\">d</p>",
		"<p>&nbsp;<p>\u00a0</p></p>",
		"<<p>></p>",
		"<img width=\"1\" width=\"2\"><p>\u00a0\u00a0</p>",
	}
	for _, in := range inputs {
		once := CleanEditorHTML(in)
		assert.Equal(t, once, CleanEditorHTML(once), "input %q", in)
	}
}

func TestCleanEditorHTML_Golden(t *testing.T) {
	inputs := map[string]string{
		"tinymce_article": "<p>&nbsp;</p>\n<p>Intro paragraph.</p>\n" +
			"<p><img src=\"/media/a.jpg\" alt=\"A\" height=\"300\" width=\"400\" /></p>\n" +
			"<p class=\"caption\">Photo: Someone</p>\n<p> </p>\n" +
			"<p>Closing <img width='20' src=\"/media/b.png\" HEIGHT=10>.</p>\n",
		"linked_figure_crlf": "<p><a href=\"/big.jpg\"><img src=\"/small.jpg\" width=\"620\" height=\"400\"></a></p>\r\n" +
			"<p class=\"caption\">A <em>river</em> at dawn</p>\r\n",
		"nested_blank_paragraphs": "<div><p><p>&nbsp;</p></p><p>\u00a0</p>Text<p class=\"x\">  </p></div>\n",
		"no_match": "<h2>Heading</h2>\n" +
			"<p>Nothing to clean here, not even <img src=\"x.png\" alt=\"width=3\">.</p>\n",
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			out := CleanEditorHTML(in)
			g.Assert(t, name, []byte(out))
			assert.Equal(t, out, CleanEditorHTML(out))
		})
	}
}
