package submission

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// DefaultMaxMemory is the multipart memory budget used when none is given.
const DefaultMaxMemory = 32 << 20

// FromRequest collects the submitted values and upload metadata of a POST
// request. Keys seen once map to a string; repeated keys and keys ending in
// "[]" map to []any. sessionToken is carried into the returned Context.
func FromRequest(r *http.Request, maxMemory int64, sessionToken string) (map[string]any, *Context, error) {
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, nil, fmt.Errorf("submission: parse multipart: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, nil, fmt.Errorf("submission: parse form: %w", err)
	}

	values := make(map[string]any, len(r.PostForm))
	for key, list := range r.PostForm {
		if len(list) == 1 && !strings.HasSuffix(key, "[]") {
			values[key] = list[0]
			continue
		}
		items := make([]any, len(list))
		for i, item := range list {
			items[i] = item
		}
		values[key] = items
	}

	ctx := &Context{SessionToken: sessionToken}
	if r.MultipartForm != nil {
		for key, files := range r.MultipartForm.File {
			if len(files) == 0 || files[0].Filename == "" {
				continue
			}
			if ctx.Uploads == nil {
				ctx.Uploads = map[string]Upload{}
			}
			fh := files[0]
			ctx.Uploads[strings.TrimSuffix(key, "[]")] = Upload{
				Name:     fh.Filename,
				Size:     fh.Size,
				MimeType: fh.Header.Get("Content-Type"),
			}
		}
	}
	return values, ctx, nil
}

// ErrNoSession is returned by SessionToken when the cookie is missing.
var ErrNoSession = errors.New("submission: no session cookie")

// SessionToken reads the CSRF token stored in the named cookie.
func SessionToken(r *http.Request, cookie string) (string, error) {
	c, err := r.Cookie(cookie)
	if err != nil || c.Value == "" {
		return "", ErrNoSession
	}
	return c.Value, nil
}
