package validator_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/goliatone/go-formtree/pkg/submission"
	"github.com/goliatone/go-formtree/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleApply(t *testing.T) {
	msg, failed := validator.FromValidator(validator.NotEmpty()).Apply("")
	assert.True(t, failed)
	assert.Equal(t, "This field is required.", msg)

	_, failed = validator.FromValidator(validator.NotEmpty()).Apply("value")
	assert.False(t, failed)

	fn := validator.FromFunc(func(v any) error {
		if v == "bad" {
			return errors.New("bad value")
		}
		return nil
	})
	msg, failed = fn.Apply("bad")
	assert.True(t, failed)
	assert.Equal(t, "bad value", msg)
	_, failed = fn.Apply("good")
	assert.False(t, failed)
}

func TestThresholdMagnitude(t *testing.T) {
	lte := validator.LessThanEqual(3)
	assert.True(t, lte.Evaluate("3"))
	assert.False(t, lte.Evaluate(4))
	assert.True(t, lte.Evaluate([]any{"a", "b"}))
	assert.False(t, lte.Evaluate([]string{"a", "b", "c", "d"}))
	assert.False(t, lte.Evaluate("abc"))
	assert.Equal(t, float64(3), lte.Limit())

	size := validator.MaxSize(1024)
	assert.True(t, size.Evaluate(submission.Upload{Name: "a.png", Size: 1000}))
	assert.False(t, size.Evaluate(submission.Upload{Name: "a.png", Size: 2048}))
	assert.Equal(t, "The file exceeds the maximum size of 1KB.", size.Message())

	assert.True(t, validator.GreaterThan(1).Evaluate(2))
	assert.False(t, validator.GreaterThanEqual(5).Evaluate("4.5"))
	assert.True(t, validator.LessThan(10).Evaluate(9.99))
}

func TestLengthAndRegex(t *testing.T) {
	l := validator.Length(2, 4)
	assert.True(t, l.Evaluate("héé"))
	assert.False(t, l.Evaluate("h"))
	assert.False(t, l.Evaluate("hello"))
	assert.Equal(t, "The value must be between 2 and 4 characters long.", l.Message())

	re := validator.Regex(regexp.MustCompile(`^[a-z]+$`))
	assert.True(t, re.Evaluate(""))
	assert.True(t, re.Evaluate("abc"))
	assert.False(t, re.Evaluate("ab1"))
}

func TestInListLoose(t *testing.T) {
	in := validator.InList(1, 2, "three")
	assert.True(t, in.Evaluate("1"))
	assert.True(t, in.Evaluate([]any{"2", "three"}))
	assert.False(t, in.Evaluate([]any{"2", "four"}))
}

func TestEmailAndURL(t *testing.T) {
	assert.True(t, validator.Email().Evaluate("a@example.com"))
	assert.False(t, validator.Email().Evaluate("not-an-email"))
	assert.True(t, validator.Email().Evaluate(""))
	assert.True(t, validator.URL().Evaluate("https://example.com/x"))
	assert.False(t, validator.URL().Evaluate("example"))
}

func TestMimeType(t *testing.T) {
	v := validator.MimeType("image/*", "application/pdf", "csv")
	assert.True(t, v.Evaluate(submission.Upload{Name: "a.png", MimeType: "image/png"}))
	assert.True(t, v.Evaluate(submission.Upload{Name: "doc.pdf", MimeType: "application/pdf"}))
	assert.True(t, v.Evaluate(submission.Upload{Name: "data.CSV", MimeType: "text/plain"}))
	assert.False(t, v.Evaluate(submission.Upload{Name: "run.exe", MimeType: "application/x-msdownload"}))
	assert.True(t, v.Evaluate(nil))
}

func TestBuildByName(t *testing.T) {
	v, err := validator.Build("less-than-equal", map[string]any{"value": "5", "message": "Too many."})
	require.NoError(t, err)
	assert.Equal(t, "Too many.", v.Message())
	_, isThreshold := v.(validator.Threshold)
	assert.True(t, isThreshold, "message override keeps the threshold capability")

	v, err = validator.Build("max_length", map[string]any{"value": 3})
	require.NoError(t, err)
	assert.False(t, v.Evaluate("abcd"))

	_, err = validator.Build("nope", nil)
	assert.ErrorIs(t, err, validator.ErrUnknownValidator)

	_, err = validator.Build("regex", map[string]any{"pattern": "("})
	assert.Error(t, err)
}

func TestRulesNormalisesShapes(t *testing.T) {
	rules, err := validator.Rules([]any{
		"email",
		map[string]any{"name": "length", "max": 10},
		validator.NotEmpty(),
		func(v any) error { return nil },
		func(v any) string { return "always" },
	})
	require.NoError(t, err)
	require.Len(t, rules, 5)
	assert.True(t, rules[1].Valid())
	assert.False(t, rules[0].IsThreshold())

	msg, failed := rules[4].Apply("x")
	assert.True(t, failed)
	assert.Equal(t, "always", msg)

	single, err := validator.Rules(validator.LessThan(2))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.True(t, single[0].IsThreshold())

	_, err = validator.Rules(42)
	assert.ErrorIs(t, err, validator.ErrUnsupportedRule)
}
