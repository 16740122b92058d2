package filter_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formtree/pkg/filter"
	"github.com/stretchr/testify/assert"
)

func TestFilterExclusion(t *testing.T) {
	upper := filter.New("upper", func(v any, _ ...any) any {
		return strings.ToUpper(v.(string))
	}, filter.ExcludeTypes("file"), filter.ExcludeNames("raw"))

	assert.Equal(t, "abc", upper.Apply("abc", "file", "avatar"))
	assert.Equal(t, "ABC", upper.Apply("abc", "text", "title"))
	assert.Equal(t, "abc", upper.Apply("abc", "text", "raw"))
	assert.True(t, upper.Excludes("file", ""))
}

func TestFilterMapsCollectionsWithParams(t *testing.T) {
	suffix := filter.New("suffix", func(v any, params ...any) any {
		return v.(string) + params[0].(string)
	}, filter.WithParams("!"))

	assert.Equal(t, []any{"a!", "b!"}, suffix.Apply([]string{"a", "b"}, "multicheckbox", "tags"))
	assert.Equal(t, []any{"!"}, suffix.Params())
}

func TestChainOrder(t *testing.T) {
	chain := filter.Chain{
		filter.New("trim", func(v any, _ ...any) any { return strings.TrimSpace(v.(string)) }),
		filter.New("wrap", func(v any, _ ...any) any { return "[" + v.(string) + "]" }),
	}
	assert.Equal(t, "[x]", chain.Apply("  x  ", "text", "t"))
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, `O'Reilly`, filter.Unescape(`O\'Reilly`))
	assert.Equal(t, `a\b`, filter.Unescape(`a\\b`))
	assert.Equal(t, 5, filter.Unescape(5))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Hello world & co", filter.PlainText("  <b>Hello</b>\n\tworld <script>x</script>& co "))
	assert.Equal(t, true, filter.PlainText(true))
}

func TestPlainTextKeepsEncodedMarkupInert(t *testing.T) {
	encoded := "&lt;script&gt;alert(1)&lt;/script&gt;"
	once := filter.PlainText(encoded)
	assert.Equal(t, encoded, once)
	assert.Equal(t, once, filter.PlainText(once), "sanitising twice changes nothing")

	assert.Equal(t, `Tom & Jerry say "hi"`, filter.PlainText(`Tom & Jerry say "hi"`))
	assert.Equal(t, "&amp;lt;", filter.PlainText("&amp;lt;"))
}

func TestRichTextKeepsSafeMarkup(t *testing.T) {
	out := filter.RichText(`<p>Hi <a href="javascript:alert(1)">x</a> <em>there</em></p><script>alert(1)</script>`).(string)
	assert.Contains(t, out, "<em>there</em>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "javascript")
}

func TestRichTextDecodesTextOnly(t *testing.T) {
	assert.Equal(t, `<p>Tom & Jerry say "hi"</p>`, filter.RichText(`<p>Tom & Jerry say "hi"</p>`))

	out := filter.RichText(`<a href="https://example.com/?a=1&b=2">Q&A</a>`).(string)
	assert.Contains(t, out, `href="https://example.com/?a=1&amp;b=2"`, "attribute values stay encoded")
	assert.Contains(t, out, ">Q&A</a>")

	encoded := "&lt;b&gt;not bold&lt;/b&gt;"
	assert.Equal(t, encoded, filter.RichText(encoded))
	assert.Equal(t, `Tom & Jerry`, filter.RichText(filter.RichText("Tom & Jerry")))
}

func TestDefaultsScopeByType(t *testing.T) {
	chain := filter.Defaults([]string{"text", "file", "textarea", "editor", "select"})
	raw := `<b>bold</b> \"quoted\"`

	assert.Equal(t, `bold "quoted"`, chain.Apply(raw, "text", "title"))
	assert.Equal(t, `<b>bold</b> "quoted"`, chain.Apply(raw, "textarea", "body"))
	assert.Equal(t, `me\"you.png`, chain.Apply(`me\"you.png`, "file", "avatar"), "file values skip unescaping")
}
