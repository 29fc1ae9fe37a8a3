// Package contact mounts the contact form controller on net/http.
//
// Each browser visit is keyed by a cookie and owns one contact.Controller,
// kept in a size and TTL bounded LRU; evicted visits are closed. GET renders
// the form (with the entrance transition on the first render of a visit and
// the confirmation banner while the success window is open). POST validates
// and submits: failures re-render with inline messages and status 422,
// success redirects back with 303. Requests that accept application/json get
// JSON instead of HTML.
//
// The form markup is generated from the embedded OpenAPI description under
// schema/contact.yaml.
package contact
