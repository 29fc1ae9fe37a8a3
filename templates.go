package admaiora

import (
	"io/fs"

	"github.com/goliatone/go-admaiora/internal/site"
	"github.com/goliatone/go-admaiora/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in form templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// SiteTemplates exposes the page layout and page templates. Copy them into a
// directory and point content.templates_dir at it to override single pages.
func SiteTemplates() fs.FS {
	return site.TemplatesFS()
}
