package submission_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtree/pkg/submission"
)

func TestFromRequestURLEncoded(t *testing.T) {
	form := url.Values{"name": {"Ada"}, "tags[]": {"a"}, "pick": {"x", "y"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	values, ctx, err := submission.FromRequest(req, 0, "tok")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]any{"name": "Ada", "tags[]": []any{"a"}, "pick": []any{"x", "y"}}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if ctx.Token() != "tok" || len(ctx.Uploads) != 0 {
		t.Fatalf("unexpected context %+v", ctx)
	}
}

func TestFromRequestMultipartUploads(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("title", "Photo"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="avatar"; filename="Me.PNG"`)
	header.Set("Content-Type", "image/png")
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(bytes.Repeat([]byte{1}, 10))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	values, ctx, err := submission.FromRequest(req, 1<<20, "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if values["title"] != "Photo" {
		t.Fatalf("unexpected values %v", values)
	}
	upload, ok := ctx.Upload("avatar")
	if !ok {
		t.Fatalf("expected avatar upload")
	}
	want := submission.Upload{Name: "Me.PNG", Size: 10, MimeType: "image/png"}
	if diff := cmp.Diff(want, upload); diff != "" {
		t.Fatalf("upload mismatch (-want +got):\n%s", diff)
	}
	if upload.Extension() != "png" {
		t.Fatalf("unexpected extension %q", upload.Extension())
	}
	if _, ok := ctx.Upload("avatar[]"); !ok {
		t.Fatalf("expected marker-suffixed lookup to resolve")
	}
}

func TestContextNilSafe(t *testing.T) {
	var ctx *submission.Context
	if ctx.Token() != "" {
		t.Fatalf("expected empty token")
	}
	if _, ok := ctx.Upload("x"); ok {
		t.Fatalf("expected no upload")
	}
}

func TestSessionToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := submission.SessionToken(req, "sid"); err != submission.ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	req.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	if got, err := submission.SessionToken(req, "sid"); err != nil || got != "abc" {
		t.Fatalf("unexpected token %q %v", got, err)
	}
}
