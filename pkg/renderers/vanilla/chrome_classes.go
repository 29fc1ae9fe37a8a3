package vanilla

// ChromeClass is a typed identifier for the CSS classes the form markup uses.
type ChromeClass string

const (
	ClassForm       ChromeClass = "am-form"
	ClassField      ChromeClass = "am-field"
	ClassFieldError ChromeClass = "am-field-error"
	ClassInvalid    ChromeClass = "am-invalid"
	ClassActions    ChromeClass = "am-actions"
	ClassErrors     ChromeClass = "am-errors"
	ClassBanner     ChromeClass = "am-banner"
	ClassFadeIn     ChromeClass = "am-fade-in"
)

func (c ChromeClass) String() string {
	return string(c)
}
