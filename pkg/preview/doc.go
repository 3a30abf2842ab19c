// Package preview renders standalone HTML pages showing code-input widgets
// after setup, using a pongo2 template set.
package preview
