package element

import (
	"github.com/goliatone/go-formtree/pkg/submission"
	"github.com/goliatone/go-formtree/pkg/value"
	"github.com/google/uuid"
)

// TokenMessage is recorded when the submitted CSRF token does not match the
// session token.
const TokenMessage = "The form security token is invalid. Please reload the page and try again."

// Token is a hidden CSRF field. The rendered value is the session token; on
// submission the posted value must match the token carried by the
// submission context.
type Token struct {
	*Input
}

// NewToken builds a token field. An empty token generates a fresh one.
func NewToken(name, token string) *Token {
	if token == "" {
		token = NewTokenValue()
	}
	t := &Token{Input: newInput(name, "hidden", "csrf", token)}
	return t
}

// NewTokenValue returns a random token suitable for a session.
func NewTokenValue() string {
	return uuid.NewString()
}

func (t *Token) Validate(ctx *submission.Context) bool {
	t.Check(t.value, value.Empty(t.value), nil)
	expected := ctx.Token()
	if expected == "" || value.String(t.value) != expected {
		t.AddError(TokenMessage)
	}
	return !t.HasErrors()
}
