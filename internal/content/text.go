package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	urlPattern       = regexp.MustCompile(`https?://[^\s<>"']+`)
	blankLinePattern = regexp.MustCompile(`\n{3,}`)
	spaceRunPattern  = regexp.MustCompile(`[ \t]{2,}`)
	// A complete start, end or self-closing tag, or a comment.
	markupPattern = regexp.MustCompile(`<(?:/?[A-Za-z][A-Za-z0-9-]*(?:\s[^<>]*)?/?>|!--)`)
)

// paragraphElements are separated from their neighbours by a blank line.
var paragraphElements = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Ul: true, atom.Ol: true,
	atom.Blockquote: true, atom.Pre: true, atom.Table: true,
}

// lineElements start on their own line.
var lineElements = map[atom.Atom]bool{
	atom.Div: true, atom.Li: true, atom.Tr: true, atom.Section: true,
	atom.Article: true, atom.Header: true, atom.Footer: true, atom.Hr: true,
}

// skippedElements contribute no text.
var skippedElements = map[atom.Atom]bool{
	atom.Img: true, atom.Script: true, atom.Style: true, atom.Head: true,
	atom.Template: true, atom.Noscript: true, atom.Svg: true,
}

// HTMLToText converts an editor HTML fragment to post text. Line-break markup
// becomes newlines and images are dropped. Text without any tags is already
// plain: it is only whitespace-normalized, and its entities and stray '<'
// characters are kept as written.
func HTMLToText(src string) string {
	if !markupPattern.MatchString(src) {
		return normalizeText(src)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return normalizeText(src)
	}

	w := &textWriter{}
	for _, n := range doc.Find("body").Nodes {
		w.walk(n)
	}
	return normalizeText(w.b.String())
}

// FirstURL returns the first http(s) URL in text, or "".
func FirstURL(text string) string {
	return trimURL(urlPattern.FindString(text))
}

// AllURLs returns every http(s) URL in text with its byte offsets.
func AllURLs(text string) [][2]int {
	var out [][2]int
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		trimmed := trimURL(text[loc[0]:loc[1]])
		out = append(out, [2]int{loc[0], loc[0] + len(trimmed)})
	}
	return out
}

// StripURL removes rawURL from text, tidying the whitespace it leaves behind.
// A trailing slash difference between rawURL and the text is tolerated.
func StripURL(text, rawURL string) string {
	if rawURL == "" {
		return text
	}
	candidates := []string{rawURL}
	if alt := strings.TrimSuffix(rawURL, "/"); alt != rawURL {
		candidates = append(candidates, alt)
	}
	for _, c := range candidates {
		if strings.Contains(text, c) {
			return normalizeText(strings.ReplaceAll(text, c, ""))
		}
	}
	return text
}

func trimURL(u string) string {
	return strings.TrimRight(u, ".,;:!?)]}")
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		lines[i] = line[:indent] + spaceRunPattern.ReplaceAllString(line[indent:], " ")
	}
	s = strings.Join(lines, "\n")
	s = blankLinePattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// textWriter accumulates text while tracking trailing newlines, so block
// boundaries never stack more breaks than needed.
type textWriter struct {
	b          strings.Builder
	trailing   int
	afterBreak bool
}

func (w *textWriter) walk(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			w.write(c.Data)
		case html.ElementNode:
			if c.DataAtom == atom.Br {
				w.newline()
				continue
			}
			if skippedElements[c.DataAtom] {
				continue
			}
			breaks := 0
			if paragraphElements[c.DataAtom] {
				breaks = 2
			} else if lineElements[c.DataAtom] {
				breaks = 1
			}
			w.ensureBreaks(breaks)
			w.walk(c)
			w.ensureBreaks(breaks)
		}
	}
}

func (w *textWriter) write(s string) {
	if w.afterBreak {
		// Source formatting newline right after a <br> or block boundary.
		s = strings.TrimPrefix(s, "\n")
	}
	if s == "" {
		return
	}
	w.afterBreak = false
	w.b.WriteString(s)
	trimmed := strings.TrimRight(s, "\n")
	if trimmed == "" {
		w.trailing += len(s)
	} else {
		w.trailing = len(s) - len(trimmed)
	}
}

func (w *textWriter) newline() {
	w.b.WriteByte('\n')
	w.trailing++
	w.afterBreak = true
}

func (w *textWriter) ensureBreaks(n int) {
	if n == 0 || w.b.Len() == 0 {
		return
	}
	for w.trailing < n {
		w.newline()
	}
	w.afterBreak = true
}
