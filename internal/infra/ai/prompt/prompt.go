package prompt

import "fmt"

// Template is one versioned generation prompt. Templates are data, not
// inline formatting, so the report and question formats can be tested
// without the generation adapter.
type Template struct {
	ID     string
	System string
	// User is a format string with a single %s slot for the input text.
	User string
}

// Render fills the input slot of the user prompt.
func (t Template) Render(input string) string {
	return fmt.Sprintf(t.User, input)
}
