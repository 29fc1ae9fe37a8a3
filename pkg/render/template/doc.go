// Package template defines the renderer-agnostic template seam. The gotemplate
// subpackage provides the pongo2 backed implementation used by the site and
// the form renderer.
package template
