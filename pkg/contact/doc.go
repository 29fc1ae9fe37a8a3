// Package contact implements the contact form controller: field validation,
// submission state, the timed success window, and the delivery channels that
// hand validated payloads to the form-hosting provider.
//
// Validation is a normal outcome rather than an error path. Validate returns a
// FieldErrors map keyed by field name; an empty map means the values passed.
// Controller gates Submit on Validate, hands the payload to a Channel, flips
// the submitted flag for SuccessWindow and clears the values.
package contact
