package content

import (
	"strings"
	"testing"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "hello world", want: "hello world"},
		{name: "br tags", in: "line one<br>line two<br/>line three", want: "line one\nline two\nline three"},
		{name: "contenteditable divs", in: "hello<div>world</div><div><br></div><div>again</div>", want: "hello\nworld\n\nagain"},
		{name: "paragraphs", in: "<p>first</p><p>second</p>", want: "first\n\nsecond"},
		{name: "inline markup", in: "<b>bold</b> and <i>italic</i> <span style=\"color:red\">red</span>", want: "bold and italic red"},
		{name: "inline image removed", in: `look <img src="data:image/png;base64,AAAA" alt="x"> here`, want: "look here"},
		{name: "entities decoded", in: "<p>Tom &amp; Jerry &lt;3</p>", want: "Tom & Jerry <3"},
		{name: "plain text keeps entities", in: "x &amp;lt; y", want: "x &amp;lt; y"},
		{name: "plain text keeps stray angle bracket", in: "if a<b then c", want: "if a<b then c"},
		{name: "space runs collapsed", in: "too   many\tspaces", want: "too many spaces"},
		{name: "indentation kept", in: "list:\n  - one", want: "list:\n  - one"},
		{name: "non-breaking spaces", in: "<span>a&nbsp;b</span>", want: "a b"},
		{name: "script dropped", in: "safe<script>alert(1)</script>", want: "safe"},
		{name: "trailing whitespace trimmed", in: "  padded  <br>  ", want: "padded"},
		{name: "many blank lines collapsed", in: "a<br><br><br><br>b", want: "a\n\nb"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTMLToText(tt.in); got != tt.want {
				t.Errorf("HTMLToText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHTMLToText_Idempotent(t *testing.T) {
	inputs := []string{
		"hello world",
		"line one\nline two\n\nline four",
		"Tom & Jerry",
		"visit https://example.com/path?a=1&b=2 today",
		"emoji 🦋 and ünïcödé",
		"hello<div>world</div><p>para</p>",
		"if a&lt;b then c",
		"x &amp;lt; y",
		"<p>if a&lt;b then c</p>",
		"look <img src=\"data:image/png;base64,AAAA\"> here",
		"a < b and c > d",
	}

	for _, in := range inputs {
		once := HTMLToText(in)
		twice := HTMLToText(once)
		if once != twice {
			t.Errorf("HTMLToText not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestHTMLToText_MarkdownRoundTrip(t *testing.T) {
	html, err := RenderMarkdown("**hello**\nworld\n\nsecond paragraph")
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if got, want := HTMLToText(html), "hello\nworld\n\nsecond paragraph"; got != want {
		t.Errorf("HTMLToText(RenderMarkdown()) = %q, want %q", got, want)
	}
}

func TestFirstURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "hello https://example.com", want: "https://example.com"},
		{in: "see (https://example.com/a).", want: "https://example.com/a"},
		{in: "http://a.test and https://b.test", want: "http://a.test"},
		{in: "no links here", want: ""},
		{in: "ftp://example.com", want: ""},
	}

	for _, tt := range tests {
		if got := FirstURL(tt.in); got != tt.want {
			t.Errorf("FirstURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAllURLs(t *testing.T) {
	text := "a https://x.test, b https://y.test/p."
	got := AllURLs(text)
	if len(got) != 2 {
		t.Fatalf("AllURLs() = %v, want 2 ranges", got)
	}
	if text[got[0][0]:got[0][1]] != "https://x.test" || text[got[1][0]:got[1][1]] != "https://y.test/p" {
		t.Errorf("AllURLs() ranges = %v", got)
	}
}

func TestStripURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		url  string
		want string
	}{
		{name: "trailing url", text: "hello https://example.com", url: "https://example.com", want: "hello"},
		{name: "middle url", text: "read https://example.com now", url: "https://example.com", want: "read now"},
		{name: "trailing slash mismatch", text: "hello https://example.com", url: "https://example.com/", want: "hello"},
		{name: "url absent", text: "hello", url: "https://example.com", want: "hello"},
		{name: "empty url", text: "hello  there", url: "", want: "hello  there"},
		{name: "url on its own line", text: "title\nhttps://example.com", url: "https://example.com", want: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripURL(tt.text, tt.url); got != tt.want {
				t.Errorf("StripURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Title\n\nvisit https://example.com")
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.Contains(html, "<h1>Title</h1>") {
		t.Errorf("RenderMarkdown() = %q, want an h1", html)
	}
	if !strings.Contains(html, `<a href="https://example.com">`) {
		t.Errorf("RenderMarkdown() = %q, want a linkified URL", html)
	}
}
