package template

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formtree/pkg/element"
	"github.com/goliatone/go-formtree/pkg/form"
)

// Extension is the file extension of the embedded widget templates.
const Extension = ".tpl"

//go:embed widgets/*.tpl
var widgetFiles embed.FS

// Widgets returns the embedded widget templates, one per template-backed
// control type, named after the control's template key.
func Widgets() fs.FS {
	sub, err := fs.Sub(widgetFiles, "widgets")
	if err != nil {
		panic(fmt.Sprintf("template: widgets fs: %v", err))
	}
	return sub
}

// RenderFunc adapts a renderer into the callback template-backed controls
// invoke. Templates receive the control's view data as "field".
func RenderFunc(r TemplateRenderer) element.RenderFunc {
	return func(el element.Element, name string) (string, error) {
		if r == nil {
			return "", element.ErrNoRenderer
		}
		out, err := r.RenderTemplate(name, map[string]any{"field": form.View(el)})
		if err != nil {
			return "", fmt.Errorf("template: render %s for %q: %w", name, el.Name(), err)
		}
		return out, nil
	}
}
