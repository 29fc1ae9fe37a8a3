// Package model defines the typed form model consumed by renderers. Builders
// live in internal/model but return the types re-exported here. Presentation
// hints are read from the `x-form` extension on each request body property
// (label, placeholder, widget, inputType, autocomplete, rows, order, message);
// operation level `x-form-name` and `x-form-submit` set the static form name
// and submit label.
package model
