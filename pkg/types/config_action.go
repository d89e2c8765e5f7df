package types

import "io/fs"

// ConfigAction is one idempotent file write. Content must be a pure function:
// applying the same action twice must leave byte-identical files.
type ConfigAction struct {
	// Name identifies the action in config and output
	Name string
	// Path is the absolute target path before any root prefix is applied
	Path    string
	Mode    fs.FileMode
	Content func() []byte
}

// Render returns the content to write, or nil when no generator is set
func (a ConfigAction) Render() []byte {
	if a.Content == nil {
		return nil
	}
	return a.Content()
}

// Literal returns a content generator that always yields the given text
func Literal(text string) func() []byte {
	return func() []byte {
		return []byte(text)
	}
}
