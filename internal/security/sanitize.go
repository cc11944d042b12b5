package security

import (
	"strings"

	"golang.org/x/net/html"
)

// Sanitize removes script elements from s: script start and end tags and the
// text between them. Every other token, including text a tokenizer does not
// read as markup such as "a < b", is written back byte for byte.
func Sanitize(s string) string {
	// Dropping a tag can join its neighbours into a new one ("<<script>script>"),
	// so repeat until a pass changes nothing.
	for {
		out := sanitizeOnce(s)
		if out == s {
			return out
		}
		s = out
	}
}

func sanitizeOnce(s string) string {
	var (
		b        strings.Builder
		z        = html.NewTokenizer(strings.NewReader(s))
		inScript bool
		consumed int
	)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// Anything the tokenizer did not return is an unterminated tag.
			if tail := s[consumed:]; !inScript && !hasScriptTag(tail) {
				b.WriteString(tail)
			}
			return b.String()
		}

		// TagName lowercases the buffer in place; copy the raw bytes first.
		raw := string(z.Raw())
		consumed += len(raw)

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "script" {
				inScript = tt != html.EndTagToken
				continue
			}
		}
		if inScript {
			continue
		}

		switch {
		case !hasScriptTag(raw):
			b.WriteString(raw)
		case tt == html.TextToken:
			// Raw text of elements like <style> or <textarea>. Text that is
			// the whole input cannot be split further and is dropped.
			if len(raw) < len(s) {
				b.WriteString(sanitizeOnce(raw))
			}
		default:
			// A malformed tag or comment wrapping a script tag.
			b.WriteString("<")
			b.WriteString(sanitizeOnce(raw[1:]))
		}
	}
}

// hasScriptTag reports whether s contains "<script" followed by a tag
// delimiter or the end of input, in any letter case.
func hasScriptTag(s string) bool {
	const open = "<script"
	lower := strings.ToLower(s)
	for i := strings.Index(lower, open); i >= 0; {
		end := i + len(open)
		if end == len(lower) || strings.ContainsRune(" \t\n\r\f/>", rune(lower[end])) {
			return true
		}
		next := strings.Index(lower[end:], open)
		if next < 0 {
			return false
		}
		i = end + next
	}
	return false
}
