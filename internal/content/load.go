package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

var (
	// ErrNoPages is returned for copy without any page.
	ErrNoPages = errors.New("content: at least one page is required")

	htmlPolicy = bluemonday.UGCPolicy()
	textPolicy = bluemonday.StrictPolicy()
)

// Default returns the embedded copy.
func Default() (*Site, error) {
	return Load(bytes.NewReader(defaultSite))
}

// DefaultYAML exposes the embedded copy so it can be written out as a
// starting point for an editable file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultSite...)
}

// LoadFile reads copy from a YAML file.
func LoadFile(path string) (*Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("content: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes YAML copy, rejecting unknown keys, and sanitises it.
func Load(r io.Reader) (*Site, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var site Site
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	if err := site.validate(); err != nil {
		return nil, err
	}
	site.sanitize()
	return &site, nil
}

func (s *Site) validate() error {
	if len(s.Pages) == 0 {
		return ErrNoPages
	}
	seen := make(map[string]struct{}, len(s.Pages))
	for i, page := range s.Pages {
		if strings.TrimSpace(page.Slug) == "" {
			return fmt.Errorf("content: page %d: slug is required", i)
		}
		if !strings.HasPrefix(page.Path, "/") {
			return fmt.Errorf("content: page %q: path must start with /", page.Slug)
		}
		if _, dup := seen[page.Path]; dup {
			return fmt.Errorf("content: page %q: duplicate path %s", page.Slug, page.Path)
		}
		seen[page.Path] = struct{}{}
	}
	return nil
}

// sanitize keeps UGC markup in Body fields and strips all markup elsewhere.
// Templates print Body with the safe filter and escape everything else.
func (s *Site) sanitize() {
	for i := range s.Pages {
		s.Pages[i].Body = htmlPolicy.Sanitize(s.Pages[i].Body)
		s.Pages[i].Lead = plain(s.Pages[i].Lead)
	}
	for i := range s.Posts {
		s.Posts[i].Body = htmlPolicy.Sanitize(s.Posts[i].Body)
		s.Posts[i].Summary = plain(s.Posts[i].Summary)
	}
	s.Contact.Promise = plain(s.Contact.Promise)
}

// plain drops tags from copy that is rendered as text. The strict policy
// escapes the remaining text, which the templates would escape again, so
// entities are undone afterwards.
func plain(value string) string {
	stripped := textPolicy.Sanitize(value)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
