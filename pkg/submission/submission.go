// Package submission carries the request-scoped data that validation needs
// beyond the submitted values themselves: uploaded file metadata and the
// session-bound CSRF token. Callers build a Context per request and pass it
// explicitly, keeping elements free of any global request state.
package submission

import (
	"path/filepath"
	"strings"
)

// Upload describes a file received for a field. Storage of the file contents
// is the caller's concern; validators only inspect the metadata.
type Upload struct {
	Name     string
	Size     int64
	MimeType string
}

// Extension returns the lowercase file extension without the leading dot.
func (u Upload) Extension() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(u.Name)), ".")
}

// Context holds per-request validation inputs.
type Context struct {
	// Uploads maps field names to the file received for them.
	Uploads map[string]Upload
	// SessionToken is the CSRF token stored server side for this session.
	SessionToken string
}

// Upload returns the upload registered for the field, if any.
func (c *Context) Upload(name string) (Upload, bool) {
	if c == nil || len(c.Uploads) == 0 {
		return Upload{}, false
	}
	upload, ok := c.Uploads[strings.TrimSuffix(name, "[]")]
	if !ok || upload.Name == "" {
		return Upload{}, false
	}
	return upload, true
}

// Token returns the session token or an empty string.
func (c *Context) Token() string {
	if c == nil {
		return ""
	}
	return c.SessionToken
}
