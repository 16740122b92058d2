package filter

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	plainOnce   sync.Once
	plainPolicy *bluemonday.Policy
	richOnce    sync.Once
	richPolicy  *bluemonday.Policy

	whitespace = regexp.MustCompile(`[\r\n\t ]+`)
	ampersand  = regexp.MustCompile(`&amp;(#?[A-Za-z0-9]+;)?`)
	quotes     = strings.NewReplacer("&#34;", `"`, "&quot;", `"`, "&#39;", "'")
)

func plainSanitizer() *bluemonday.Policy {
	plainOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return plainPolicy
}

func richSanitizer() *bluemonday.Policy {
	richOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		richPolicy = policy
	})
	return richPolicy
}

// Unescape removes backslash escaping: `\x` becomes `x` and `\\` becomes `\`.
// Non-string values are returned unchanged.
func Unescape(v any, _ ...any) any {
	s, ok := v.(string)
	if !ok || !strings.Contains(s, `\`) {
		return v
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// PlainText strips all markup, folds whitespace runs (line breaks included)
// into single spaces, and trims. Quotes and bare ampersands come back
// decoded; angle brackets and entity-like sequences stay encoded.
func PlainText(v any, _ ...any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	cleaned := decodeText(plainSanitizer().Sanitize(s))
	return strings.TrimSpace(whitespace.ReplaceAllString(cleaned, " "))
}

// RichText keeps the safe subset of user markup (links, emphasis, lists).
// Text between tags gets the same partial decoding as PlainText; attribute
// values are left as the sanitiser wrote them.
func RichText(v any, _ ...any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return strings.TrimSpace(decodeTextNodes(richSanitizer().Sanitize(s)))
}

// decodeText undoes the quote and ampersand encoding the sanitiser applies to
// text. "&lt;", "&gt;" and "&amp;" followed by an entity body are kept so the
// result never gains markup and sanitising it again is a no-op.
func decodeText(s string) string {
	s = quotes.Replace(s)
	return ampersand.ReplaceAllStringFunc(s, func(m string) string {
		if m == "&amp;" {
			return "&"
		}
		return m
	})
}

func decodeTextNodes(markup string) string {
	if !strings.Contains(markup, "&") {
		return markup
	}
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	b.Grow(len(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.WriteString(decodeText(string(z.Raw())))
		default:
			b.Write(z.Raw())
		}
	}
}

// RichTextTypes are the control types that accept markup.
var RichTextTypes = []string{"textarea", "editor"}

// Defaults builds the standard chain for a form whose control types are
// knownTypes: backslash unescaping (skipped for uploads), plain text
// sanitising for everything but rich text controls, and markup sanitising
// for rich text controls only.
func Defaults(knownTypes []string) Chain {
	var others []string
	for _, typ := range knownTypes {
		if !slices.Contains(RichTextTypes, typ) && !slices.Contains(others, typ) {
			others = append(others, typ)
		}
	}
	return Chain{
		New("unescape", Unescape, ExcludeTypes("file")),
		New("plain-text", PlainText, ExcludeTypes(RichTextTypes...)),
		New("rich-text", RichText, ExcludeTypes(others...)),
	}
}
