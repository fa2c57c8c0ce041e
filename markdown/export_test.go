package markdown

// Wrap exports wrap for testing.
func Wrap(text string, width int) []string {
	return wrap(text, width)
}
