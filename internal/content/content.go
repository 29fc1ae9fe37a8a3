// Package content holds the brochure copy: pages, services, success stories,
// blog posts and contact details. Copy lives in YAML so it can be edited
// without a rebuild; HTML fragments are sanitised when loaded.
package content

import "strings"

// Site is the full set of copy rendered by the server.
type Site struct {
	Name       string    `yaml:"name" json:"name"`
	Tagline    string    `yaml:"tagline" json:"tagline"`
	Navigation []NavItem `yaml:"navigation" json:"navigation"`
	Pages      []Page    `yaml:"pages" json:"pages"`
	Services   []Service `yaml:"services" json:"services"`
	Stories    []Story   `yaml:"stories" json:"stories"`
	Posts      []Post    `yaml:"posts" json:"posts"`
	Contact    Contact   `yaml:"contact" json:"contact"`
	Footer     string    `yaml:"footer" json:"footer"`
}

// NavItem is one entry of the header navigation.
type NavItem struct {
	Label string `yaml:"label" json:"label"`
	Path  string `yaml:"path" json:"path"`
}

// Page is the copy for one routed page. Body is sanitised HTML.
type Page struct {
	Slug        string `yaml:"slug" json:"slug"`
	Path        string `yaml:"path" json:"path"`
	Title       string `yaml:"title" json:"title"`
	Heading     string `yaml:"heading" json:"heading"`
	Lead        string `yaml:"lead" json:"lead"`
	Description string `yaml:"description" json:"description"`
	Body        string `yaml:"body" json:"body"`
}

type Service struct {
	Title   string `yaml:"title" json:"title"`
	Summary string `yaml:"summary" json:"summary"`
}

type Story struct {
	Client  string `yaml:"client" json:"client"`
	Title   string `yaml:"title" json:"title"`
	Outcome string `yaml:"outcome" json:"outcome"`
}

// Post is a blog entry. Body is sanitised HTML.
type Post struct {
	Slug    string `yaml:"slug" json:"slug"`
	Title   string `yaml:"title" json:"title"`
	Date    string `yaml:"date" json:"date"`
	Summary string `yaml:"summary" json:"summary"`
	Body    string `yaml:"body" json:"body"`
}

// Contact is the copy around the contact form.
type Contact struct {
	Heading        string   `yaml:"heading" json:"heading"`
	Location       string   `yaml:"location" json:"location"`
	Phone          string   `yaml:"phone" json:"phone"`
	Email          string   `yaml:"email" json:"email"`
	TwitterURL     string   `yaml:"twitter_url" json:"twitter_url"`
	TwitterLabel   string   `yaml:"twitter_label" json:"twitter_label"`
	OfficeHours    []string `yaml:"office_hours" json:"office_hours"`
	PromiseHeading string   `yaml:"promise_heading" json:"promise_heading"`
	Promise        string   `yaml:"promise" json:"promise"`
	TypeformTitle  string   `yaml:"typeform_title" json:"typeform_title"`
	TypeformID     string   `yaml:"typeform_id" json:"typeform_id"`
	SuccessMessage string   `yaml:"success_message" json:"success_message"`
}

// MailtoURL is the link target for the contact address. The same address is
// used for the visible text.
func (c Contact) MailtoURL() string {
	if c.Email == "" {
		return ""
	}
	return "mailto:" + c.Email
}

// Page returns the page with the given slug.
func (s *Site) Page(slug string) (Page, bool) {
	if s == nil {
		return Page{}, false
	}
	for _, page := range s.Pages {
		if page.Slug == slug {
			return page, true
		}
	}
	return Page{}, false
}

// PageByPath returns the page routed at path. Trailing slashes are ignored
// except for the root.
func (s *Site) PageByPath(path string) (Page, bool) {
	if s == nil {
		return Page{}, false
	}
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	for _, page := range s.Pages {
		if page.Path == path {
			return page, true
		}
	}
	return Page{}, false
}
